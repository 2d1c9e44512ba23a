package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reoring/yamlschema"
	"github.com/reoring/yamlschema/canonical"
	"github.com/reoring/yamlschema/config"
	"github.com/reoring/yamlschema/docs"
	"github.com/reoring/yamlschema/internal/fileutil"
	"github.com/reoring/yamlschema/internal/ui"
	"github.com/reoring/yamlschema/validate"
	"github.com/reoring/yamlschema/yamlsrc"
)

type Options struct {
	YAML      string
	Dest      string
	Docs      string
	Test      string
	Separator string
	Validate  bool
	Watch     bool

	ConfigPath string
	Debug      bool
}

func NewOptions() *Options {
	return &Options{
		YAML:      "share",
		Test:      "test",
		Separator: yamlschema.DefaultSeparator,
	}
}

func NewDefaultCmd() *cobra.Command {
	return NewCmd(NewOptions())
}

func NewCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "yamlschema",
		Version: Version,
		Short:   "yamlschema converts YAML schemas to JSON Schema, documents and validates them",
		Long: `yamlschema converts a YAML-authored JSON Schema into canonical JSON,
renders a flattened documentation table and validates JSON instances.

Example:
  yamlschema --yaml share --dest schema --docs share.csv --validate --test test`,
		RunE: func(cmd *cobra.Command, _ []string) error { return o.Run(cmd) },
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.DisableAutoGenTag = true

	cmd.Flags().StringVar(&o.YAML, "yaml", o.YAML, "Schema source path stem (.yaml is appended)")
	cmd.Flags().StringVarP(&o.Dest, "dest", "d", o.Dest, "Canonical JSON output path stem (.json is appended); empty skips")
	cmd.Flags().StringVar(&o.Docs, "docs", o.Docs, "Documentation output path with extension (.csv or .md); empty skips")
	cmd.Flags().StringVar(&o.Test, "test", o.Test, "JSON instance path stem (.json is appended) used with --validate")
	cmd.Flags().BoolVarP(&o.Validate, "validate", "v", o.Validate, "Validate the --test instance against the schema")
	cmd.Flags().StringVar(&o.Separator, "separator", o.Separator, "Separator between nested names in documentation paths")
	cmd.Flags().BoolVar(&o.Watch, "watch", false, "Keep running and rebuild outputs whenever the schema or test instance changes")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "TOML file with flag defaults (default "+config.DefaultFile+" when present)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}

func (o *Options) Run(cmd *cobra.Command) error {
	ui := ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.Debug)
	defer ui.Debugf("done\n")

	if err := o.applyConfig(cmd.Flags(), ui); err != nil {
		return err
	}
	if o.Validate && o.Test == "" {
		return yamlschema.Errorf(yamlschema.KindConfig, "--validate requires --test")
	}

	src := fileutil.ResolveSource(o.YAML)
	ui.Debugf("schema source: %s\n", src)

	if o.Watch {
		files := []string{src}
		if o.Validate {
			files = append(files, fileutil.WithExt(o.Test, ".json"))
		}
		return watch(cmd.Context(), files, func() error { return o.build(src, ui) }, ui)
	}
	return o.build(src, ui)
}

// build runs one conversion: canonical JSON, documentation, validation.
func (o *Options) build(src string, ui ui.UI) error {
	doc, err := yamlsrc.LoadFile(src)
	if err != nil {
		return err
	}

	if o.Dest != "" {
		dest := fileutil.WithExt(o.Dest, ".json")
		if err := canonical.WriteFile(dest, doc); err != nil {
			return err
		}
		ui.Debugf("wrote canonical schema: %s\n", dest)
	}

	if o.Docs != "" {
		rows, err := yamlschema.FlattenDocument(doc, yamlschema.WithSeparator(o.Separator))
		if err != nil {
			return err
		}
		if err := docs.WriteFile(o.Docs, rows); err != nil {
			return err
		}
		ui.Debugf("wrote %d documentation rows: %s\n", len(rows), o.Docs)
	}

	if o.Validate {
		return o.validate(doc, ui)
	}
	return nil
}

func (o *Options) validate(doc yamlschema.Map, ui ui.UI) error {
	path := fileutil.WithExt(o.Test, ".json")
	raw, err := validate.ReadInstance(path)
	if err != nil {
		return err
	}
	dups, err := validate.DuplicateKeys(raw)
	if err == nil {
		for _, it := range dups {
			ui.Warnf("warning: %s: %s\n", path, it)
		}
	}
	inst, err := validate.ParseInstanceFile(path, raw)
	if err != nil {
		return err
	}

	v, err := validate.Compile(doc)
	if err != nil {
		return err
	}
	if err := v.Validate(inst); err != nil {
		if iss, ok := yamlschema.AsIssues(err); ok {
			ui.Issues(fmt.Sprintf("%s does not validate against %s (%d violations):", path, stem(o.YAML), len(iss)), iss)
		}
		return err
	}
	ui.Printf("%s validated against %s.json\n", stem(o.YAML), stem(o.Test))
	return nil
}

// applyConfig fills flags the user did not set from the config file.
func (o *Options) applyConfig(flags *pflag.FlagSet, ui ui.UI) error {
	path, explicit := o.ConfigPath, o.ConfigPath != ""
	if !explicit {
		path = config.DefaultFile
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	if err := cfg.CheckVersion(Version); err != nil {
		return err
	}

	set := func(name string, dst *string, val string) {
		if val != "" && !flags.Changed(name) {
			ui.Debugf("config: %s = %q\n", name, val)
			*dst = val
		}
	}
	set("yaml", &o.YAML, cfg.YAML)
	set("dest", &o.Dest, cfg.Dest)
	set("docs", &o.Docs, cfg.Docs)
	set("test", &o.Test, cfg.Test)
	set("separator", &o.Separator, cfg.Separator)
	if cfg.Validate && !flags.Changed("validate") {
		o.Validate = true
	}
	return nil
}

func stem(path string) string {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		return strings.TrimSuffix(path, ext)
	}
	return path
}
