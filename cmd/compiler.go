package cmd

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"

	"aslc/ast"
	"aslc/codegen"
	"aslc/report"
	"aslc/sem"
	"aslc/syntax"
	"aslc/types"
	"aslc/walk"
)

// Compiler represents the state of one compilation session: the shared types
// manager, symbol table, decoration table, and error sink that the three
// passes communicate through.
type Compiler struct {
	// srcPath is the path to the ASL source file being compiled.
	srcPath string

	// profile is the current build profile of the compiler.
	profile *BuildProfile

	types   *types.Manager
	symbols *sem.SymTable
	decors  *sem.Decorations
	errs    *report.Reporter

	verbose bool
}

// NewCompiler creates a new compiler for the given source path and profile.
func NewCompiler(srcPath string, profile *BuildProfile) *Compiler {
	logLevel := logLevels[profile.LogLevel]

	return &Compiler{
		srcPath: srcPath,
		profile: profile,
		types:   types.NewManager(),
		symbols: sem.NewSymTable(),
		decors:  sem.NewDecorations(),
		errs:    report.NewReporter(logLevel),
		verbose: logLevel >= report.LogLevelVerbose,
	}
}

// Analyze runs the front phases: parsing, symbol collection, and type
// checking.  It returns the tree and whether code generation should proceed.
func (c *Compiler) Analyze() (*ast.Program, bool) {
	c.beginPhase("Parsing")
	file, err := os.Open(c.srcPath)
	if err != nil {
		c.endPhase(false)
		report.ReportFatal("unable to open source file `%s`: %s", c.srcPath, err.Error())
	}
	defer file.Close()

	prog, perr := syntax.NewParser(bufio.NewReader(file)).Parse()
	if perr != nil {
		c.endPhase(false)
		report.DisplaySyntaxError(c.srcPath, perr.(*report.LocalError))
		return nil, false
	}
	c.endPhase(true)

	if c.profile.DumpAST {
		fmt.Print(prog.Dump())
	}

	c.beginPhase("Symbols")
	walk.CollectSymbols(prog, c.types, c.symbols, c.decors, c.errs)
	c.endPhase(true)

	if c.profile.DumpSymbols {
		fmt.Print(c.symbols.Repr(c.types))
	}

	c.beginPhase("Typecheck")
	walk.CheckTypes(prog, c.types, c.symbols, c.decors, c.errs)
	c.endPhase(!c.errs.AnyErrors())

	// Errors are printed once, after type checking; code generation only
	// runs on an error-free tree.
	c.errs.Print(c.srcPath)

	return prog, !c.errs.AnyErrors()
}

// Generate runs the codegen phase and writes the TAC module to the profile's
// output path.  Analyze must have succeeded first.
func (c *Compiler) Generate(prog *ast.Program) {
	c.beginPhase("Generating")
	module := codegen.Generate(prog, c.types, c.symbols, c.decors)
	c.endPhase(true)

	if c.profile.DumpTAC {
		fmt.Print(module.Repr())
	}

	outPath := c.profile.OutputPath
	if outPath == "" {
		outPath = c.srcPath + ".t"
	}

	if err := ioutil.WriteFile(outPath, []byte(module.Repr()), 0644); err != nil {
		report.ReportFatal("unable to write output file `%s`: %s", outPath, err.Error())
	}

	if c.verbose {
		report.DisplayInfoMessage("Output", outPath)
	}
}

func (c *Compiler) beginPhase(name string) {
	if c.verbose {
		report.BeginPhase(name)
	}
}

func (c *Compiler) endPhase(success bool) {
	if c.verbose {
		report.EndPhase(success)
	}
}
