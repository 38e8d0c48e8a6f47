package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"musicstore/internal/fixtures"
	"musicstore/internal/outbound"
	"musicstore/internal/repository"
)

const fetchTimeout = 30 * time.Second

var (
	importFile string
	importURL  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace collections from a fixture document",
	Long: `Replace the collections present in a JSON or YAML fixture document.
Collections missing from the document are left as they are.

--url fetches the document over HTTP. Requests to API_BASE_URL carry
API_TOKEN as a bearer token, so the admin export of a running service
(API_BASE_URL/api/v1/admin/export) can be imported directly. Fixture
files hosted elsewhere are fetched without credentials.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "fixture file (.json, .yaml, .yml)")
	importCmd.Flags().StringVar(&importURL, "url", "", "fixture document URL")
	importCmd.MarkFlagsMutuallyExclusive("file", "url")
	importCmd.MarkFlagsOneRequired("file", "url")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		seed repository.Seed
		err  error
	)
	if importFile != "" {
		seed, err = readFile(importFile)
	} else {
		seed, err = fetch(ctx, importURL)
	}
	if err != nil {
		return err
	}

	stores, kv, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := stores.Replace(ctx, seed); err != nil {
		return err
	}
	zap.S().Infow("fixtures imported",
		"tutors", len(seed.Tutors),
		"products", len(seed.Products),
		"courses", len(seed.Courses),
		"services", len(seed.Services),
		"news", len(seed.News),
		"users", len(seed.Users),
		"admin_users", len(seed.AdminUsers),
	)
	return nil
}

func readFile(name string) (repository.Seed, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return repository.Seed{}, err
	}
	return fixtures.Decode(name, data)
}

func fetch(ctx context.Context, rawURL string) (repository.Seed, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return repository.Seed{}, fmt.Errorf("invalid url %q", rawURL)
	}

	client := outbound.NewClient(cfg.APIBaseURL, cfg.APIToken, fetchTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return repository.Seed{}, err
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := client.Do(req)
	if err != nil {
		return repository.Seed{}, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return repository.Seed{}, fmt.Errorf("fetch %s: unexpected status %s", u.Redacted(), resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return repository.Seed{}, err
	}
	return decodeRemote(path.Base(u.Path), data)
}

// decodeRemote accepts a bare fixture document or the service's response
// envelope around one.
func decodeRemote(name string, data []byte) (repository.Seed, error) {
	var env struct {
		Success *bool               `json:"success"`
		Data    jsoniter.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err == nil && env.Success != nil {
		if !*env.Success || len(env.Data) == 0 {
			return repository.Seed{}, errors.New("remote answered with an error envelope")
		}
		return fixtures.Decode("export.json", env.Data)
	}
	return fixtures.Decode(name, data)
}
