package cmd

import (
	"os"

	"aslc/report"

	"github.com/ComedicChimera/olive"
)

// Version is the compiler version reported by `aslc version`.
const Version = "0.3.1"

// Execute is the main entry point for the `aslc` CLI utility.
func Execute() {
	// set up the argument parser and all its commands and arguments
	cli := olive.NewCLI("aslc", "aslc is the compiler for the ASL language", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile an ASL source file", true)
	buildCmd.AddPrimaryArg("source-path", "the path to the source file to build", true)
	buildCmd.AddStringArg("profile", "p", "the path to the build profile", false)

	cli.AddSubcommand("version", "print the aslc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, result.Arguments["loglevel"].(string))
	case "version":
		report.DisplayInfoMessage("ASL Compiler", Version)
	}
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult, loglevel string) {
	// get the primary argument: the source path
	srcPath, _ := result.PrimaryArg()

	// load the build profile, if one was given
	profile := DefaultProfile()
	if profilePath, ok := result.Arguments["profile"]; ok {
		var err error
		profile, err = LoadProfile(profilePath.(string))
		if err != nil {
			report.ReportFatal("error loading profile: %s", err.Error())
		}
	} else {
		profile.LogLevel = loglevel
	}

	// create the compiler and run the phases
	c := NewCompiler(srcPath, profile)
	if prog, ok := c.Analyze(); ok {
		c.Generate(prog)
	} else {
		os.Exit(1)
	}
}
