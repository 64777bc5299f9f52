package commands

import (
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/diag"
	"github.com/leapstack-labs/leaplang/pkg/interp"
	"github.com/leapstack-labs/leaplang/pkg/semantic"
	"github.com/leapstack-labs/leaplang/pkg/token"
)

// Structured documents written in json and yaml modes.

// TokensOutput is the document for the tokens command.
type TokensOutput struct {
	File   string        `json:"file" yaml:"file"`
	Tokens []token.Token `json:"tokens" yaml:"tokens"`
}

// ASTOutput is the document for the ast command.
type ASTOutput struct {
	File        string            `json:"file" yaml:"file"`
	Program     *ast.Tree         `json:"program" yaml:"program"`
	Symbols     []semantic.Symbol `json:"symbols" yaml:"symbols"`
	Diagnostics diag.List         `json:"diagnostics" yaml:"diagnostics"`
}

// BindingView is one printed binding.
type BindingView struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// RunOutput is the document for the run command.
type RunOutput struct {
	File        string        `json:"file" yaml:"file"`
	RunID       string        `json:"run_id" yaml:"run_id"`
	Executed    bool          `json:"executed" yaml:"executed"`
	Bindings    []BindingView `json:"bindings" yaml:"bindings"`
	Diagnostics diag.List     `json:"diagnostics" yaml:"diagnostics"`
}

// CheckFileResult is the outcome of checking one file.
type CheckFileResult struct {
	File        string    `json:"file" yaml:"file"`
	OK          bool      `json:"ok" yaml:"ok"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
	Diagnostics diag.List `json:"diagnostics" yaml:"diagnostics"`
}

// CheckOutput is the document for the check command.
type CheckOutput struct {
	Files  []CheckFileResult `json:"files" yaml:"files"`
	Failed int               `json:"failed" yaml:"failed"`
}

func bindingViews(env *interp.Env) []BindingView {
	if env == nil {
		return []BindingView{}
	}
	out := make([]BindingView, 0, env.Len())
	for _, b := range env.Bindings() {
		out = append(out, BindingView{Name: b.Name, Type: b.Value.Type.String(), Value: b.Value.Interface()})
	}
	return out
}

func nonNil(l diag.List) diag.List {
	if l == nil {
		return diag.List{}
	}
	return l
}
