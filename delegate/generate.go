package delegate

import (
	"errors"

	"github.com/tliron/commonlog"

	"github.com/chazu/facade/loader"
	"github.com/chazu/facade/metadata"
)

var log = commonlog.GetLogger("facade.delegate")

// ErrMissingTarget indicates a delegation block without the required
// target module option.
var ErrMissingTarget = errors.New("delegation requires a target module (to:)")

// NoDocsPlaceholder is attached to generated definitions whose target
// function has no usable documentation.
const NoDocsPlaceholder = "No docs available for this function."

// Options configures one delegation batch.
type Options struct {
	// To is the target module identifier. Required.
	To string

	// As renames the generated functions; empty keeps each pattern's own
	// name. Metadata lookup always uses the name as it exists on the
	// target, before renaming.
	As string

	// AppendFirst moves each pattern's first parameter to the last
	// position in the forwarding call. The generated function's public
	// signature keeps the original order.
	AppendFirst bool

	// IncludeCallbacks widens spec lookup to behaviour callback
	// signatures.
	IncludeCallbacks bool
}

// Definition is one generated forwarding definition.
type Definition struct {
	Name       string   // public facade name
	Params     []string // formal parameters, original order
	Target     string   // target module
	TargetName string   // function name on the target
	Args       []string // forwarding arguments, possibly rotated
	Doc        string   // resolved documentation or NoDocsPlaceholder

	// Clauses are the resolved type signatures, rewritten to Name.
	Clauses []*metadata.TypeExpr
}

// Generator resolves delegation requests against target-module metadata.
type Generator struct {
	loader *loader.Loader
}

// NewGenerator creates a Generator loading artifacts through l.
func NewGenerator(l *loader.Loader) *Generator {
	return &Generator{loader: l}
}

// Generate produces one forwarding definition per pattern. Generation is
// all-or-nothing: a missing target option or an unloadable module fails
// the whole batch and no definitions are returned. Missing documentation
// or type signatures never fail generation.
func (g *Generator) Generate(patterns []CallPattern, opts Options) ([]Definition, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	art, err := g.loader.Load(opts.To)
	if err != nil {
		return nil, err
	}
	mod := metadata.Decode(art)

	mode := metadata.SpecsOnly
	if opts.IncludeCallbacks {
		mode = metadata.SpecsAndCallbacks
	}

	defs := make([]Definition, 0, len(patterns))
	for _, p := range patterns {
		defs = append(defs, g.generateOne(p, opts, mod, mode))
	}
	return defs, nil
}

// GenerateStrings parses the patterns and generates definitions. A
// pattern that does not parse fails the whole batch.
func (g *Generator) GenerateStrings(patterns []string, opts Options) ([]Definition, error) {
	parsed := make([]CallPattern, 0, len(patterns))
	for _, src := range patterns {
		p, err := ParsePattern(src)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}
	return g.Generate(parsed, opts)
}

func (g *Generator) generateOne(p CallPattern, opts Options, mod *metadata.Module, mode metadata.LookupMode) Definition {
	args := p.Params
	if opts.AppendFirst && len(args) > 0 {
		rotated := make([]string, 0, len(args))
		rotated = append(rotated, args[1:]...)
		rotated = append(rotated, args[0])
		args = rotated
	}

	publicName := p.Name
	if opts.As != "" {
		publicName = opts.As
	}
	arity := len(args)

	// Lookup is keyed by the name on the target, not the public name.
	doc, ok := metadata.FindDoc(mod.Docs, p.Name, arity)
	if !ok {
		doc = NoDocsPlaceholder
	}

	clauses := metadata.FindSpecs(mod.Specs, p.Name, arity, mode)
	if len(clauses) > 0 {
		rewritten := make([]*metadata.TypeExpr, len(clauses))
		for i, c := range clauses {
			rewritten[i] = c.WithName(publicName)
		}
		clauses = rewritten
	}

	log.Debugf("delegating %s/%d to %s.%s", publicName, arity, opts.To, p.Name)
	return Definition{
		Name:       publicName,
		Params:     p.Params,
		Target:     opts.To,
		TargetName: p.Name,
		Args:       args,
		Doc:        doc,
		Clauses:    clauses,
	}
}

// Validate reports configuration problems without doing any lookup work.
func (opts Options) Validate() error {
	if opts.To == "" {
		return ErrMissingTarget
	}
	return nil
}
