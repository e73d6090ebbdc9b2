package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ccdi-federation/ccdi-catalog/internal/catalog"
	"github.com/ccdi-federation/ccdi-catalog/internal/filter"
	"github.com/ccdi-federation/ccdi-catalog/internal/models"
	"github.com/ccdi-federation/ccdi-catalog/internal/paginate"
)

func listCmd() *cobra.Command {
	var (
		filters    map[string]string
		page       int
		perPage    int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list [subject|sample|file|subject-diagnosis|sample-diagnosis]",
		Short: "List one page of entities matching the given filters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("list: building store: %w", err)
			}
			defer func() { _ = st.Close() }()

			values := url.Values{}
			for k, v := range filters {
				values.Set(k, v)
			}
			if cmd.Flags().Changed("page") {
				values.Set(paginate.ParamPage, strconv.Itoa(page))
			}
			if cmd.Flags().Changed("per-page") {
				values.Set(paginate.ParamPerPage, strconv.Itoa(perPage))
			}

			out := listOutput{w: cmd.OutOrStdout(), route: args[0], values: values, json: outputJSON}
			switch args[0] {
			case "subject":
				return runList(ctx, out, filter.Subjects, st.Subjects, describeSubject)
			case "subject-diagnosis":
				return runList(ctx, out, filter.SubjectDiagnoses, st.Subjects, describeSubject)
			case "sample":
				return runList(ctx, out, filter.Samples, st.Samples, describeSample)
			case "sample-diagnosis":
				return runList(ctx, out, filter.SampleDiagnoses, st.Samples, describeSample)
			case "file":
				return runList(ctx, out, filter.Files, st.Files, describeFile)
			default:
				return fmt.Errorf("list: unknown entity %q", args[0])
			}
		},
	}

	cmd.Flags().StringToStringVarP(&filters, "filter", "f", nil, "filter as field=value (repeatable)")
	cmd.Flags().IntVar(&page, "page", paginate.DefaultPage, "1-based page number")
	cmd.Flags().IntVar(&perPage, "per-page", paginate.DefaultPerPage, "entities per page")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}

type listOutput struct {
	w      io.Writer
	route  string
	values url.Values
	json   bool
}

func runList[T models.Entity](
	ctx context.Context,
	out listOutput,
	reg *filter.Registry[T],
	load func(context.Context) ([]T, error),
	describe func(T) string,
) error {
	req, err := catalog.ParseRequest(out.values, reg, cfg.Catalog.DefaultPerPage)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	snapshot, err := load(ctx)
	if err != nil {
		return fmt.Errorf("list: loading %ss: %w", reg.Entity(), err)
	}

	base, err := url.Parse(linkBaseURL())
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	base = base.JoinPath(out.route)
	q := url.Values{}
	for k, v := range req.Query {
		q.Set(k, v)
	}
	base.RawQuery = q.Encode()

	res, err := catalog.Run(snapshot, reg, req, base.String())
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	if out.json {
		enc := json.NewEncoder(out.w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Data)
	}

	for i := range res.Data {
		fmt.Fprintf(out.w, "[%d] %s\n", (res.Info.CurrentPage-1)*res.Info.PerPage+i+1, describe(res.Data[i]))
	}
	fmt.Fprintf(out.w, "\nPage %d of %d (%d %ss)\n", res.Info.CurrentPage, res.Info.TotalPages, res.Info.TotalEntities, reg.Entity())
	if len(res.Links) > 0 {
		fmt.Fprintf(out.w, "Link: %s\n", res.Links)
	}
	return nil
}

func describeSubject(s models.Subject) string {
	line := fmt.Sprintf("%s (%s)", s.Identifier, s.Kind)
	if m := s.Metadata; m != nil {
		if m.Sex != nil {
			line += " sex=" + m.Sex.Value
		}
		if m.VitalStatus != nil {
			line += " vital_status=" + m.VitalStatus.Value
		}
	}
	return line
}

func describeSample(s models.Sample) string {
	line := fmt.Sprintf("%s subject=%s", s.Identifier, s.Subject)
	if m := s.Metadata; m != nil {
		if m.Diagnosis != nil {
			line += " diagnosis=" + strconv.Quote(m.Diagnosis.Value)
		}
		if m.TissueType != nil {
			line += " tissue_type=" + m.TissueType.Value
		}
	}
	return line
}

func describeFile(f models.File) string {
	line := fmt.Sprintf("%s samples=%d", f.Identifier, len(f.Samples))
	if m := f.Metadata; m != nil {
		if m.Type != nil {
			line += " type=" + m.Type.Value
		}
		if m.Size != nil {
			line += " size=" + strconv.FormatInt(*m.Size, 10)
		}
	}
	return line
}
