package systems

import (
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"sync"

	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

// ImageSource decodes the image stored at an asset path.
type ImageSource interface {
	LoadImage(assetPath string, params *metadata.ImageResourceParams) (*metadata.ImageAsset, error)
}

/**
 * @brief Builds every program of set from fsys, in set order. A program
 * that fails is left out and its error returned as a diagnostic, as is any
 * stage source under the shader directories that no program uses.
 */
func LoadShaders(backend renderer.Backend, fsys fs.FS, set metadata.ShaderSet) ([]*ShaderProgram, []error) {
	var programs []*ShaderProgram
	var diagnostics []error

	dirs := map[string]bool{}
	for _, d := range set {
		p, err := NewShaderProgram(backend, fsys, d)
		if err != nil {
			diagnostics = append(diagnostics, fmt.Errorf("shader %s: %w", d.Name, err))
		} else {
			programs = append(programs, p)
		}
		dirs[path.Dir(d.Path)] = true
	}

	sorted := make([]string, 0, len(dirs))
	for dir := range dirs {
		sorted = append(sorted, dir)
	}
	sort.Strings(sorted)

	for _, dir := range sorted {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			p := path.Join(dir, e.Name())
			switch path.Ext(p) {
			case ".vert", ".frag", ".comp":
				if _, ok := set.Owner(p); !ok {
					diagnostics = append(diagnostics, fmt.Errorf("shader source %s does not belong to any program", p))
				}
			}
		}
	}

	return programs, diagnostics
}

/**
 * @brief Decodes the images at paths on a worker pool. Each image is named by
 * its path relative to root. Results keep the order of paths; failures are
 * returned as diagnostics.
 */
func LoadImages(source ImageSource, root string, paths []string, params *metadata.ImageResourceParams) ([]*metadata.ImageAsset, []error) {
	if len(paths) == 0 {
		return nil, nil
	}

	workers := runtime.NumCPU()
	if workers > len(paths) {
		workers = len(paths)
	}
	js, err := NewJobSystem(workers, len(paths))
	if err != nil {
		return nil, []error{err}
	}

	var mu sync.Mutex
	decoded := make([]*metadata.ImageAsset, len(paths))
	failures := make([]error, len(paths))

	for i, p := range paths {
		i, p := i, p
		js.Submit(JobTask{
			Name: p,
			OnStart: func() (interface{}, error) {
				img, err := source.LoadImage(p, params)
				if err == nil && img == nil {
					err = fmt.Errorf("no image decoded")
				}
				return img, err
			},
			OnComplete: func(result interface{}) {
				img := result.(*metadata.ImageAsset)
				img.Name = relativeName(root, p)
				mu.Lock()
				decoded[i] = img
				mu.Unlock()
			},
			OnFailure: func(err error) {
				mu.Lock()
				failures[i] = fmt.Errorf("texture %s: %w", p, err)
				mu.Unlock()
			},
		})
	}
	_ = js.Shutdown()

	var images []*metadata.ImageAsset
	var diagnostics []error
	for i := range paths {
		if failures[i] != nil {
			diagnostics = append(diagnostics, failures[i])
			continue
		}
		images = append(images, decoded[i])
	}
	return images, diagnostics
}

func relativeName(root, p string) string {
	if root == "" || root == "." {
		return p
	}
	prefix := path.Clean(root) + "/"
	if len(p) > len(prefix) && p[:len(prefix)] == prefix {
		return p[len(prefix):]
	}
	return p
}

// LoadTextures registers images with the renderer. Duplicates and bad sizes
// are returned as diagnostics.
func LoadTextures(r *RendererSystem, images []*metadata.ImageAsset) []error {
	var diagnostics []error
	for _, img := range images {
		if err := r.AddImage(img); err != nil {
			diagnostics = append(diagnostics, fmt.Errorf("texture %s: %w", img.Name, err))
		}
	}
	return diagnostics
}
