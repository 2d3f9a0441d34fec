package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iho/ledgerengine/internal/infrastructure/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// apiClient talks to the ledger HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

// apiError is a non-2xx answer of the API.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// do sends the request and decodes the JSON answer into out. Non-2xx answers
// are returned as *apiError with out left untouched.
func (c *apiClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}

	return json.Unmarshal(data, out)
}

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	rootCmd := &cobra.Command{
		Use:           "ledger-cli",
		Short:         "Ledger engine CLI",
		Long:          `A command line interface for the ledger engine API and its database migrations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	client := func() *apiClient {
		return &apiClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
	}

	rootCmd.AddCommand(
		migrateCmd(),
		transfersCmd(client),
		accountsCmd(client),
		ledgerCmd(client),
	)

	return rootCmd
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.PersistentFlags().StringVar(&path, "path", "migrations", "Directory holding migration files")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if databaseURL == "" {
					return fmt.Errorf("--database-url or DATABASE_URL is required")
				}
				return postgres.RunMigrations(databaseURL, path)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if databaseURL == "" {
					return fmt.Errorf("--database-url or DATABASE_URL is required")
				}
				return postgres.RunMigrationsDown(databaseURL, path)
			},
		},
	)

	return cmd
}

func transfersCmd(client func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Transfer operations",
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid transfer id: %w", err)
			}

			var out map[string]any
			if err := client().do(cmd.Context(), http.MethodGet, "/api/v1/transfers/"+id.String(), nil, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	var (
		file  string
		batch bool
	)
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Submit a linked group, or a batch of groups with --batch",
		Long: `Submit transfers read from a JSON file ("-" reads stdin).
Without --batch the file holds {"transfers": [...]}; with --batch it holds {"groups": [[...], ...]}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			path := "/api/v1/transfers"
			if batch {
				path += "/batch"
			}

			var out any
			if err := client().do(cmd.Context(), http.MethodPost, path, body, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	submit.Flags().StringVarP(&file, "file", "f", "", "JSON file with the transfers")
	submit.Flags().BoolVar(&batch, "batch", false, "Submit independent linked groups")
	_ = submit.MarkFlagRequired("file")

	cmd.AddCommand(get, submit)
	return cmd
}

func accountsCmd(client func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show an account and its counters",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid account id: %w", err)
				}

				var out map[string]any
				if err := client().do(cmd.Context(), http.MethodGet, "/api/v1/accounts/"+id.String(), nil, &out); err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			},
		},
		&cobra.Command{
			Use:   "reconcile <id>",
			Short: "Compare stored counters with transfer history",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid account id: %w", err)
				}

				var out map[string]any
				if err := client().do(cmd.Context(), http.MethodGet, "/api/v1/accounts/"+id.String()+"/reconcile", nil, &out); err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			},
		},
	)

	return cmd
}

func ledgerCmd(client func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistency := &cobra.Command{
		Use:   "consistency <ledger-id>",
		Short: "Check that debits and credits of a ledger balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid ledger id: %w", err)
			}

			var out map[string]any
			err = client().do(cmd.Context(), http.MethodGet, "/api/v1/ledgers/"+id.String()+"/consistency", nil, &out)
			if apiErr, ok := err.(*apiError); ok && apiErr.Status == http.StatusConflict {
				fmt.Fprintf(cmd.OutOrStdout(), "Consistency check FAILED\n%s\n", apiErr.Body)
				return fmt.Errorf("ledger %s is inconsistent", id)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Consistency check PASSED")
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	reconcile := &cobra.Command{
		Use:   "reconcile <ledger-id>",
		Short: "Reconcile every account of a ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid ledger id: %w", err)
			}

			var out map[string]any
			if err := client().do(cmd.Context(), http.MethodGet, "/api/v1/ledgers/"+id.String()+"/reconciliation", nil, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.AddCommand(consistency, reconcile)
	return cmd
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
