package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/pointfield/engine/assets/loaders"
	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

const eventBufferSize = 64

var ErrAssetManagerClosed = errors.New("asset manager already closed")

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type AssetManager struct {
	root    string
	fsys    fs.FS
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	events   chan string
}

func NewAssetManager() *AssetManager {
	am := &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		events:  make(chan string, eventBufferSize),
		done:    make(chan struct{}),
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})

	return am
}

// Initialize indexes every file under assetsDir. With watch set, changes
// below the directory are reported on Events until Shutdown.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	if am.isClosed {
		return ErrAssetManagerClosed
	}
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	s, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !s.IsDir() {
		return fmt.Errorf("assets path %s is not a directory", root)
	}
	am.root = root
	am.fsys = os.DirFS(root)

	if watch {
		fsWatch, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.fsnotify = fsWatch
	}

	if err := am.watchRecursive(root); err != nil {
		if am.fsnotify != nil {
			am.fsnotify.Close()
			am.fsnotify = nil
		}
		return err
	}

	if am.fsnotify != nil {
		am.wg.Add(1)
		go am.start()
	}

	core.LogInfo("indexed %d assets under %s", am.count(), root)
	return nil
}

// Root is the absolute assets directory.
func (am *AssetManager) Root() string {
	return am.root
}

// FS exposes the assets directory; paths are slash separated and relative to Root.
func (am *AssetManager) FS() fs.FS {
	return am.fsys
}

// Events delivers the relative path of every created or modified asset.
// Events are dropped while the buffer is full.
func (am *AssetManager) Events() <-chan string {
	return am.events
}

// Assets lists the indexed paths of one type in lexical order.
func (am *AssetManager) Assets(resourceType metadata.ResourceType) []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	paths := make([]string, 0, len(am.assets))
	for p, info := range am.assets {
		if info.Type == resourceType {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(path string, params interface{}) (*metadata.Resource, error) {
	am.mutex.Lock()
	asset, exists := am.assets[path]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[path] = asset
	}
	am.mutex.Unlock()
	if !exists {
		return nil, fmt.Errorf("asset not found: %s", path)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	return loader.Load(am.fsys, path, params)
}

// LoadImage decodes an indexed image asset.
func (am *AssetManager) LoadImage(path string, params *metadata.ImageResourceParams) (*metadata.ImageAsset, error) {
	resource, err := am.LoadAsset(path, params)
	if err != nil {
		return nil, err
	}
	img, ok := resource.Data.(*metadata.ImageAsset)
	if !ok {
		return nil, fmt.Errorf("asset %s is not an image", path)
	}
	return img, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	am.mutex.RLock()
	info, exists := am.assets[asset.FullPath]
	am.mutex.RUnlock()
	if !exists {
		return nil
	}
	if loader, ok := am.loaders[info.Type]; ok {
		return loader.Unload(asset)
	}
	return nil
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	am.wg.Wait()
	return nil
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleWatchEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) handleWatchEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(e.Name); err != nil {
				core.LogWarn("failed to watch %s: %s", e.Name, err.Error())
			}
		}
		return
	}

	path, ok := am.relative(e.Name)
	if !ok {
		return
	}
	// Create or modify
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if am.indexFile(path) {
			am.notify(path)
		}
	}
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(path)
	}
}

func (am *AssetManager) notify(path string) {
	select {
	case am.events <- path:
	default:
		core.LogWarn("asset event buffer full, dropping %s", path)
	}
}

// watchRecursive indexes every file under dir and, when watching, adds
// each directory to the watch list.
func (am *AssetManager) watchRecursive(dir string) error {
	return filepath.WalkDir(dir, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if am.fsnotify != nil {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		if p, ok := am.relative(walkPath); ok {
			am.indexFile(p)
		}
		return nil
	})
}

func (am *AssetManager) relative(name string) (string, bool) {
	rel, err := filepath.Rel(am.root, name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// indexFile records path if it has a known asset type.
func (am *AssetManager) indexFile(path string) bool {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func (am *AssetManager) count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".frag", ".comp":
		return metadata.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".webp":
		return metadata.ResourceTypeImage
	default:
		return metadata.ResourceTypeNone
	}
}
