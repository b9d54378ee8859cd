package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/usecase"
)

type standardizeOutput struct {
	Items     []domain.ExtractedItem `json:"items"`
	Threshold int                    `json:"threshold"`
	Report    []domain.ItemOutcome   `json:"report,omitempty"`
}

func (o *rootOptions) runStandardize(cmd *cobra.Command, args []string) error {
	if o.threshold > 100 || o.threshold < -1 {
		return fmt.Errorf("%w: threshold must be between 0 and 100", domain.ErrInvalidRequest)
	}

	items, err := readItems(cmd, args)
	if err != nil {
		return err
	}

	_, components, err := o.build(cmd)
	if err != nil {
		return err
	}
	defer components.Close()

	svc := components.Service
	threshold := svc.Threshold()
	var opts []usecase.StandardizeOption
	if o.threshold >= 0 {
		threshold = o.threshold
		opts = append(opts, usecase.WithThreshold(threshold))
	}

	out := standardizeOutput{Threshold: threshold}
	if o.report {
		out.Items, out.Report, err = svc.StandardizeWithReport(cmd.Context(), items, opts...)
	} else {
		out.Items, err = svc.Standardize(cmd.Context(), items, opts...)
	}
	if err != nil {
		return fmt.Errorf("standardize failed: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), out, o.pretty)
}

// readItems decodes either a JSON array of items or an object with an items
// field from the named file or stdin.
func readItems(cmd *cobra.Command, args []string) ([]domain.ExtractedItem, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no input", domain.ErrInvalidRequest)
	}

	if data[0] == '[' {
		var items []domain.ExtractedItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
		}
		return items, nil
	}

	var wrapped struct {
		Items []domain.ExtractedItem `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if wrapped.Items == nil {
		return nil, fmt.Errorf("%w: missing items", domain.ErrInvalidRequest)
	}
	return wrapped.Items, nil
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return errors.Join(errors.New("failed to write output"), err)
	}
	return nil
}
