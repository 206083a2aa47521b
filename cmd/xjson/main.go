// Package main is a small inspection tool for JSON and XJSON files. It
// transcodes XJSON to canonical JSON, runs the mapping engine in
// dictionary mode, and prints the result.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"

	"github.com/zoobzio/xjson"
)

var args struct {
	Path      string `arg:"positional,required" help:"JSON or XJSON file to read"`
	Transcode bool   `help:"print the canonical JSON for an XJSON file and exit"`
	Dump      bool   `help:"dump the decoded value graph instead of printing JSON"`
	Quiet     bool   `help:"suppress warnings"`
}

func main() {
	arg.MustParse(&args)

	warn := color.New(color.FgYellow)
	fail := color.New(color.FgRed)

	sink := func(msg string, sev xjson.Severity) {
		if args.Quiet {
			return
		}
		switch sev {
		case xjson.SeverityWarn:
			warn.Fprintf(os.Stderr, "warn: %s\n", msg)
		case xjson.SeverityError:
			fail.Fprintf(os.Stderr, "error: %s\n", msg)
		}
	}

	if args.Transcode {
		data, err := os.ReadFile(args.Path)
		if err != nil {
			fail.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(xjson.Transcode(data, nil)))
		return
	}

	res, err := xjson.ReadFileAny(args.Path, xjson.WithLogger(sink))
	if err != nil {
		fail.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if args.Dump {
		spew.Dump(res)
		return
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fail.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
