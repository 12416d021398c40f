// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen renders a markdown page per snapgpa subcommand from the live
// command tree plus the examples in examples.yaml.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/snapgpa/snapgpa/internal/command"
	"github.com/snapgpa/snapgpa/internal/version"
)

//go:embed examples.yaml
var examplesYAML []byte

//go:embed command.md.tmpl
var pageTemplate string

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type Extras struct {
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	Syntax  string
	Usage   string
	Default string
}

type Page struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []Flag
	Extras
	Date    string
	Version string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs dir>")
		os.Exit(1)
	}
	dir := filepath.Join(os.Args[1], "commands")

	if err := generate(dir, time.Now()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(dir string, now time.Time) error {
	extras, err := loadExtras(examplesYAML)
	if err != nil {
		return err
	}

	app, err := command.InitApp(context.Background(), []string{"snapgpa"})
	if err != nil {
		return err
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, cmd := range app.Commands {
		path := filepath.Join(dir, cmd.Name+".md")
		fmt.Println("Generating", path)

		file, err := os.Create(path)
		if err != nil {
			return err
		}
		err = render(file, tmpl, newPage(cmd, extras[cmd.Name], now))
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func loadExtras(b []byte) (map[string]Extras, error) {
	var extras map[string]Extras
	if err := yaml.Unmarshal(b, &extras); err != nil {
		return nil, fmt.Errorf("failed to parse examples: %w", err)
	}
	return extras, nil
}

func newPage(cmd *cli.Command, extras Extras, now time.Time) Page {
	page := Page{
		Name:      cmd.Name,
		Usage:     cmd.Usage,
		UsageText: cmd.UsageText,
		Extras:    extras,
		Date:      now.Format("January 2, 2006"),
		Version:   version.Version,
	}

	for _, f := range cmd.Flags {
		page.Flags = append(page.Flags, newFlag(f))
	}
	return page
}

func newFlag(f cli.Flag) Flag {
	var names []string
	for _, n := range f.Names() {
		if len(n) == 1 {
			names = append(names, "-"+n)
		} else {
			names = append(names, "--"+n)
		}
	}

	flag := Flag{Syntax: strings.Join(names, ", ")}
	if d, ok := f.(cli.DocGenerationFlag); ok {
		flag.Usage = d.GetUsage()
		if d.TakesValue() {
			flag.Default = strings.Trim(d.GetValue(), `"`)
		}
	}
	return flag
}

func render(w io.Writer, tmpl *template.Template, page Page) error {
	return tmpl.Execute(w, page)
}
