package commands

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/storm/internal/core/config"
	"github.com/hay-kot/storm/internal/printer"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "storm config validate [options]",
				Description: "Validates the configuration file, reporting every invalid field.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResult struct {
	Path   string            `json:"path"`
	Exists bool              `json:"exists"`
	Valid  bool              `json:"valid"`
	Errors []validationIssue `json:"errors,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	result := cmd.validate()

	if cmd.format == "json" {
		if err := cmd.outputJSON(c, result); err != nil {
			return err
		}
	} else {
		cmd.outputText(printer.Ctx(ctx), result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) validate() validationResult {
	result := validationResult{Path: cmd.flags.ConfigPath}
	if _, err := os.Stat(result.Path); err == nil {
		result.Exists = true
	}

	cfg, err := config.Read(result.Path)
	if err != nil {
		result.Errors = append(result.Errors, validationIssue{Field: "file", Message: err.Error()})
		return result
	}

	if err := cfg.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Errors = append(result.Errors, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
			}
		} else {
			result.Errors = append(result.Errors, validationIssue{Field: "config", Message: err.Error()})
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (cmd *ConfigValidateCmd) outputJSON(c *cli.Command, result validationResult) error {
	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, result validationResult) {
	p.Section("storm config")
	if result.Exists {
		p.Infof("config: %s", result.Path)
	} else {
		p.Infof("config: %s not found, using defaults", result.Path)
	}

	for _, issue := range result.Errors {
		p.Errorf("%s: %s", issue.Field, issue.Message)
	}

	p.Printf("")
	if result.Valid {
		p.Successf("Configuration is valid")
		return
	}

	p.Errorf("%d error(s) found", len(result.Errors))
}
