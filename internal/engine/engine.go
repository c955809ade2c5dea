package engine

import (
	"context"
	"sort"
	"time"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/noir"
	"github.com/xab-mack/aztlint/internal/profile"
	"github.com/xab-mack/aztlint/internal/rules"
	"github.com/xab-mack/aztlint/internal/util"
)

type Engine struct {
	registry *rules.Registry
}

func New() *Engine {
	reg := rules.NewRegistry()
	reg.RegisterBuiltin()
	return &Engine{registry: reg}
}

// Options tune a single analysis invocation.
type Options struct {
	Profile  string
	Allow    []string
	Warn     []string
	Deny     []string
	Semantic *analysis.SemanticModel
}

// Request is the file-system level entry: a project root plus options.
type Request struct {
	Path              string
	Profile           string
	Allow             []string
	Warn              []string
	Deny              []string
	BaselinePath      string
	SemanticModelPath string
}

type Result struct {
	Diagnostics []model.Diagnostic `json:"diagnostics"`
	ConfigPath  string             `json:"config_path,omitempty"`
	Elapsed     time.Duration      `json:"elapsed"`
}

// Run loads config and sources from disk, analyzes them and applies the
// baseline filter.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, cfgPath, err := config.Load(req.Path)
	if err != nil {
		return nil, err
	}
	sources, err := discoverSources(req.Path, cfg.Files)
	if err != nil {
		return nil, err
	}
	var sem *analysis.SemanticModel
	if req.SemanticModelPath != "" {
		if sem, err = analysis.LoadSemanticModel(req.SemanticModelPath); err != nil {
			return nil, err
		}
	}
	diags, err := e.Analyze(sources, &cfg, Options{
		Profile:  req.Profile,
		Allow:    req.Allow,
		Warn:     req.Warn,
		Deny:     req.Deny,
		Semantic: sem,
	})
	if err != nil {
		return nil, err
	}
	baseline, err := loadBaseline(req.BaselinePath)
	if err != nil {
		return nil, err
	}
	diags = filterByBaseline(diags, baseline)
	return &Result{Diagnostics: diags, ConfigPath: cfgPath, Elapsed: time.Since(start)}, nil
}

// Analyze is the pure pipeline over in-memory sources: detect, build the
// model, build graphs, propagate taint, resolve levels, run the rules and
// post-process into the final deterministic diagnostic list.
func (e *Engine) Analyze(sources []model.SourceUnit, cfg *config.Config, opts Options) ([]model.Diagnostic, error) {
	aztecCfg := &cfg.Aztec
	activated := noir.ShouldActivateAztec(opts.Profile, sources, aztecCfg)

	profileName := opts.Profile
	if profileName == "" {
		profileName = "default"
		if activated {
			profileName = "aztec"
		}
	}

	specs := rules.SpecIndex()
	levels, err := profile.Resolve(cfg, profileName, rules.Packs(), specs)
	if err != nil {
		return nil, err
	}
	if err := profile.ApplyCLIOverrides(levels, specs, opts.Allow, opts.Warn, opts.Deny); err != nil {
		return nil, err
	}

	var aztec *model.AztecModel
	if activated {
		aztec = noir.BuildModel(sources, aztecCfg)
	}
	graphModel := aztec
	if graphModel == nil {
		graphModel = &model.AztecModel{}
	}
	graphs := analysis.BuildGraphs(sources, graphModel, opts.Semantic, aztecCfg)
	flows := analysis.PropagateAll(graphs)

	contents := map[string]string{}
	scopes := map[string][]scopeOverride{}
	for _, u := range sources {
		contents[u.Path] = u.Text
		scopes[model.NormalizePath(u.Path)] = collectScopes(u)
	}

	// A rule resolved to allow still runs when some scope re-enables it with
	// #[warn]/#[deny]; out-of-scope diagnostics of such rules are dropped in
	// post-processing.
	runLevels := map[string]model.Level{}
	for id, lvl := range levels {
		runLevels[id] = lvl
		if lvl == model.LevelAllow && hasScopedEnable(scopes, id) {
			runLevels[id] = model.LevelWarn
		}
	}

	ruleCtx := &analysis.RuleContext{
		Sources:  sources,
		Contents: contents,
		Aztec:    aztec,
		Semantic: opts.Semantic,
		Graphs:   graphs,
		Flows:    flows,
		Config:   aztecCfg,
		Specs:    specs,
		Levels:   runLevels,
	}
	raw := e.registry.Run(ruleCtx)

	out := make([]model.Diagnostic, 0, len(raw))
	for _, d := range raw {
		sc := findNearest(scopes[d.PrimarySpan.File], d.RuleID, d.PrimarySpan.Line)
		switch {
		case sc != nil && sc.Level == model.LevelAllow:
			d.Suppress("allow(" + d.RuleID + ")")
		case sc != nil:
			d.Severity = model.SeverityForLevel(sc.Level)
		case levels[d.RuleID] == model.LevelAllow:
			// Ran only because of a scoped enable elsewhere in the project.
			continue
		}
		d.Fingerprint = util.Fingerprint(d.PrimarySpan, d.RuleID)
		d.Canonicalize()
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return model.CompareDiagnostics(out[i], out[j], util.HashHex) < 0
	})
	return out, nil
}

func hasScopedEnable(scopes map[string][]scopeOverride, ruleID string) bool {
	for _, fileScopes := range scopes {
		for _, s := range fileScopes {
			if s.RuleID == ruleID && s.Level != model.LevelAllow {
				return true
			}
		}
	}
	return false
}
