package assets

import (
	"io/fs"

	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

type Loader interface {
	Load(fsys fs.FS, path string, params interface{}) (*metadata.Resource, error) // `interface{}` here allows loaders to take per-type parameters
	Unload(*metadata.Resource) error
}
