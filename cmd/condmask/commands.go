package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vegasq/condmask/condition"
	"github.com/vegasq/condmask/config"
	"github.com/vegasq/condmask/mask"
	"github.com/vegasq/condmask/output"
	"github.com/vegasq/condmask/reader"
	"github.com/vegasq/condmask/table"
)

// selection is a frame together with the mask a condition produced for it
type selection struct {
	cfg    config.Config
	logger log.Logger
	frame  *table.Frame
	mask   *mask.Mask
}

// evaluate reads pattern and evaluates where against it
func (e *env) evaluate(pattern, where string) (*selection, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	logger := e.logger(cfg)

	frame, err := reader.ReadPattern(pattern)
	if err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "loaded table", "table", frame.Name(), "rows", frame.Len(), "columns", len(frame.Columns()))

	opts := cfg.EvaluatorOptions()
	opts.Logger = logger
	m, err := condition.NewEvaluator(opts).EvalString(where, frame)
	if err != nil {
		if errors.Is(err, condition.ErrUnknownColumn) {
			return nil, fmt.Errorf("%w\navailable columns: %s", err, strings.Join(frame.Columns(), ", "))
		}
		return nil, err
	}

	level.Info(logger).Log("msg", "condition evaluated",
		"table", frame.Name(),
		"matched", humanize.Comma(int64(m.Count())),
		"total", humanize.Comma(int64(frame.Len())))

	return &selection{cfg: cfg, logger: logger, frame: frame, mask: m}, nil
}

// filterCommand prints the rows selected by a condition
type filterCommand struct {
	env     *env
	pattern *string
	where   *string
}

func (cmd *filterCommand) run(_ *kingpin.ParseContext) error {
	sel, err := cmd.env.evaluate(*cmd.pattern, *cmd.where)
	if err != nil {
		return err
	}

	rows, err := sel.frame.Select(sel.mask)
	if err != nil {
		return err
	}
	if sel.cfg.Limit > 0 && len(rows) > sel.cfg.Limit {
		rows = rows[:sel.cfg.Limit]
	}

	formatter, err := output.New(sel.cfg.Format, cmd.env.stdout)
	if err != nil {
		return err
	}
	if err := formatter.Format(sel.frame.Columns(), rows); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

func addFilterCommand(app *kingpin.Application, e *env) {
	cmd := &filterCommand{env: e}
	c := app.Command("filter", "Print the rows matching a condition.").Action(e.action(cmd.run))
	cmd.where = c.Flag("where", "Condition, e.g. '[age > 30 and age <= 40] or name == alice'.").Short('w').Required().String()
	cmd.pattern = c.Arg("pattern", "Parquet file or glob pattern.").Required().String()
}

// maskCommand prints the selection mask of a condition
type maskCommand struct {
	env     *env
	pattern *string
	where   *string
}

func (cmd *maskCommand) run(_ *kingpin.ParseContext) error {
	sel, err := cmd.env.evaluate(*cmd.pattern, *cmd.where)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.env.stdout, sel.mask.String())
	fmt.Fprintf(cmd.env.stdout, "selected %s of %s rows\n",
		humanize.Comma(int64(sel.mask.Count())), humanize.Comma(int64(sel.mask.Len())))
	return nil
}

func addMaskCommand(app *kingpin.Application, e *env) {
	cmd := &maskCommand{env: e}
	c := app.Command("mask", "Print the boolean mask of a condition, one flag per row.").Action(e.action(cmd.run))
	cmd.where = c.Flag("where", "Condition to evaluate.").Short('w').Required().String()
	cmd.pattern = c.Arg("pattern", "Parquet file or glob pattern.").Required().String()
}

// exprCommand prints the parsed form of a condition without reading data
type exprCommand struct {
	env  *env
	cond *string
}

func (cmd *exprCommand) run(_ *kingpin.ParseContext) error {
	cfg, err := cmd.env.config()
	if err != nil {
		return err
	}
	opts := cfg.EvaluatorOptions()
	opts.Logger = cmd.env.logger(cfg)

	ev, err := condition.NewEvaluator(opts).Parse(*cmd.cond)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.env.stdout, ev.Statement())
	fmt.Fprintln(cmd.env.stdout, ev.Expression().String())
	return nil
}

func addExprCommand(app *kingpin.Application, e *env) {
	cmd := &exprCommand{env: e}
	c := app.Command("expr", "Print the predicate a condition translates to.").Action(e.action(cmd.run))
	cmd.cond = c.Arg("condition", "Condition to translate.").Required().String()
}

// columnsCommand lists the columns of a parquet file
type columnsCommand struct {
	env  *env
	file *string
}

func (cmd *columnsCommand) run(_ *kingpin.ParseContext) error {
	cfg, err := cmd.env.config()
	if err != nil {
		return err
	}

	infos, err := reader.ReadColumnInfo(*cmd.file)
	if err != nil {
		return err
	}

	rows := make([]map[string]interface{}, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, map[string]interface{}{
			"name":     info.Name,
			"type":     info.Type,
			"optional": info.Optional,
			"repeated": info.Repeated,
		})
	}

	formatter, err := output.New(cfg.Format, cmd.env.stdout)
	if err != nil {
		return err
	}
	return formatter.Format([]string{"name", "type", "optional", "repeated"}, rows)
}

func addColumnsCommand(app *kingpin.Application, e *env) {
	cmd := &columnsCommand{env: e}
	c := app.Command("columns", "List the columns a condition can reference.").Action(e.action(cmd.run))
	cmd.file = c.Arg("file", "Parquet file.").Required().ExistingFile()
}
