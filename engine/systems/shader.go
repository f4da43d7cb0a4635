package systems

import (
	"bufio"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

// Matches single-line declarations of the form `uniform <type> <name>`.
var uniformDeclaration = regexp.MustCompile(`^\s*uniform\s+\w+\s+(\w+)`)

// ShaderProgram is one linked program together with the uniform locations
// discovered in its sources.
type ShaderProgram struct {
	descriptor metadata.ShaderDescriptor
	backend    renderer.Backend
	id         uint32
	required   []metadata.RequiredUniform
	locations  map[string]int32
}

type stageSource struct {
	stage  metadata.ShaderStage
	path   string
	source string
}

/**
 * @brief Reads, compiles and links the stages of descriptor from fsys.
 * No GPU object survives a failed build.
 */
func NewShaderProgram(backend renderer.Backend, fsys fs.FS, descriptor metadata.ShaderDescriptor) (*ShaderProgram, error) {
	var sources []stageSource
	for _, stage := range descriptor.Type.Stages() {
		path := descriptor.StagePath(stage)
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, &SourceReadError{Path: path, Err: err}
		}
		sources = append(sources, stageSource{stage: stage, path: path, source: string(data)})
	}

	var shaders []uint32
	release := func() {
		for _, s := range shaders {
			backend.DeleteShader(s)
		}
	}

	sp := &ShaderProgram{
		descriptor: descriptor,
		backend:    backend,
		locations:  make(map[string]int32),
	}

	for _, src := range sources {
		id := backend.CreateShader(src.stage)
		shaders = append(shaders, id)
		if ok, log := backend.CompileShader(id, src.source); !ok {
			release()
			return nil, &CompileError{Stage: src.stage, Path: src.path, Log: log}
		}
		sp.required = append(sp.required, scanUniforms(src.path, src.source)...)
	}

	program := backend.CreateProgram()
	for _, s := range shaders {
		backend.AttachShader(program, s)
	}
	ok, log := backend.LinkProgram(program)
	for _, s := range shaders {
		backend.DetachShader(program, s)
	}
	release()
	if !ok {
		backend.DeleteProgram(program)
		return nil, &LinkError{Log: log}
	}
	sp.id = program

	backend.UseProgram(program)
	for _, u := range sp.required {
		if _, seen := sp.locations[u.Name]; seen {
			continue
		}
		sp.locations[u.Name] = backend.GetUniformLocation(program, u.Name)
	}
	backend.UseProgram(0)

	return sp, nil
}

func scanUniforms(path, source string) []metadata.RequiredUniform {
	var found []metadata.RequiredUniform
	scanner := bufio.NewScanner(strings.NewReader(source))
	line := 0
	for scanner.Scan() {
		line++
		m := uniformDeclaration.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		found = append(found, metadata.RequiredUniform{
			Name:     m[1],
			Location: fmt.Sprintf("%s:%d", path, line),
		})
	}
	return found
}

func (sp *ShaderProgram) ID() metadata.ShaderIdentifier {
	return sp.descriptor.ID
}

func (sp *ShaderProgram) Name() string {
	return sp.descriptor.Name
}

func (sp *ShaderProgram) Type() metadata.ProgramType {
	return sp.descriptor.Type
}

// Handle returns the backend program object.
func (sp *ShaderProgram) Handle() uint32 {
	return sp.id
}

// Location looks a uniform up in the cache. A cached -1 means the linker
// dropped the uniform; writes to it are ignored by the backend.
func (sp *ShaderProgram) Location(name string) (int32, bool) {
	loc, ok := sp.locations[name]
	return loc, ok
}

func (sp *ShaderProgram) Metadata() metadata.ShaderMetadata {
	required := make([]metadata.RequiredUniform, len(sp.required))
	copy(required, sp.required)
	return metadata.ShaderMetadata{
		ID:               sp.descriptor.ID,
		Name:             sp.descriptor.Name,
		Type:             sp.descriptor.Type,
		RequiredUniforms: required,
	}
}

func (sp *ShaderProgram) Destroy() {
	if sp.id != 0 {
		sp.backend.DeleteProgram(sp.id)
		sp.id = 0
	}
}

// ShaderSystem owns one program per identifier of a shader set and tracks
// which of them is bound.
type ShaderSystem struct {
	backend  renderer.Backend
	set      metadata.ShaderSet
	programs []*ShaderProgram
	bound    *ShaderProgram
}

func NewShaderSystem(backend renderer.Backend, set metadata.ShaderSet, programs []*ShaderProgram) (*ShaderSystem, error) {
	if len(programs) != len(set) {
		err := fmt.Errorf("%w: %d of %d programs loaded", ErrIncompleteShaderSet, len(programs), len(set))
		core.LogError(err.Error())
		return nil, err
	}
	for i, p := range programs {
		if p == nil || int(p.ID()) != i {
			err := fmt.Errorf("%w: program at position %d is out of order", ErrIncompleteShaderSet, i)
			core.LogError(err.Error())
			return nil, err
		}
	}

	return &ShaderSystem{
		backend:  backend,
		set:      set,
		programs: programs,
	}, nil
}

func (ss *ShaderSystem) program(id metadata.ShaderIdentifier) (*ShaderProgram, error) {
	if int(id) >= len(ss.programs) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShader, id)
	}
	return ss.programs[id], nil
}

// BindShader makes id the current program, unbinding the previous one first.
func (ss *ShaderSystem) BindShader(id metadata.ShaderIdentifier) error {
	p, err := ss.program(id)
	if err != nil {
		return err
	}
	if ss.bound != nil {
		ss.Unbind()
	}
	ss.backend.UseProgram(p.Handle())
	ss.bound = p
	return nil
}

func (ss *ShaderSystem) Unbind() {
	ss.backend.UseProgram(0)
	ss.bound = nil
}

// BoundShader returns the bound identifier, if any.
func (ss *ShaderSystem) BoundShader() (metadata.ShaderIdentifier, bool) {
	if ss.bound == nil {
		return 0, false
	}
	return ss.bound.ID(), true
}

// ActiveShaderName returns the name of the bound program, or "" when unbound.
func (ss *ShaderSystem) ActiveShaderName() string {
	if ss.bound == nil {
		return ""
	}
	return ss.bound.Name()
}

func (ss *ShaderSystem) ShaderMetadata() []metadata.ShaderMetadata {
	out := make([]metadata.ShaderMetadata, len(ss.programs))
	for i, p := range ss.programs {
		out[i] = p.Metadata()
	}
	return out
}

/**
 * @brief Rebuilds one program from fsys. On failure the current program is kept.
 * A reloaded program that was bound stays bound.
 */
func (ss *ShaderSystem) Reload(fsys fs.FS, id metadata.ShaderIdentifier) error {
	old, err := ss.program(id)
	if err != nil {
		return err
	}
	descriptor, ok := ss.set.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownShader, id)
	}

	p, err := NewShaderProgram(ss.backend, fsys, descriptor)
	if err != nil {
		return err
	}

	// Building leaves no program in use; restore what was bound.
	wasBound := ss.bound == old
	old.Destroy()
	ss.programs[id] = p
	if wasBound {
		ss.bound = p
	}
	if ss.bound != nil {
		ss.backend.UseProgram(ss.bound.Handle())
	}
	return nil
}

/**
 * @brief Shuts down the shader system, destroying every program.
 */
func (ss *ShaderSystem) Shutdown() error {
	ss.Unbind()
	for _, p := range ss.programs {
		p.Destroy()
	}
	ss.programs = nil
	return nil
}
