package contracts

import "context"

// ICompiler runs the grammar compiler once with a complete argument vector.
type ICompiler interface {
	Compile(ctx context.Context, args []string) error
}

// IProjectContext is the host build that consumes the generated sources.
type IProjectContext interface {
	AddCompileSourceRoot(dir string) error
}
