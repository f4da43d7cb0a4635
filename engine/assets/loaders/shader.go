package loaders

import (
	"io/fs"

	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

type ShaderLoader struct{}

// Load reads one stage source as text.
func (sl *ShaderLoader) Load(fsys fs.FS, path string, params interface{}) (*metadata.Resource, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     "shader",
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (sl *ShaderLoader) Unload(*metadata.Resource) error {
	return nil
}
