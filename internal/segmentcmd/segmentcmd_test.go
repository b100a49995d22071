package segmentcmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gbhl/piwg-citations/internal/reconcile"
	"github.com/gbhl/piwg-citations/internal/segments"
)

const itemResponse = `{"Status":"ok","Result":[{"ItemID":101,"Volume":"v.5=no.1-4","Pages":[
	{"PageID":555,"ItemID":101,"Volume":"5","Issue":"2","Year":"1930","PageNumbers":[{"Prefix":"Page","Number":"100"}]},
	{"PageID":556,"ItemID":101,"Volume":"5","Issue":"2","Year":"1930","PageNumbers":[{"Prefix":"Plate","Number":"110"}]}
],"Parts":[{"PartID":4242}]}]}`

// newBHLServer serves the api3 operations and the OpenURL resolver from
// canned responses and points the environment at it.
func newBHLServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/openurl" {
			fmt.Fprint(w, `{"Status":"ok","citations":[
				{"Genre":"Article","Volume":"5","SPage":"100","PartUrl":"https://www.biodiversitylibrary.org/part/4242"}]}`)
			return
		}
		switch r.URL.Query().Get("op") {
		case "GetItemMetadata":
			fmt.Fprint(w, itemResponse)
		case "GetTitleMetadata":
			fmt.Fprint(w, `{"Status":"ok","Result":[{"TitleID":7,"Items":[
				{"ItemID":101,"Volume":"v.5=no.1-4"},{"ItemID":102,"Volume":"v.6-7=no.1-8"}]}]}`)
		case "GetPartMetadata":
			fmt.Fprint(w, `{"Status":"ok","Result":[{"PartID":4242,"Identifiers":[{"IdentifierName":"BioStor","IdentifierValue":"98765"}]}]}`)
		default:
			fmt.Fprint(w, `{"Status":"error","ErrorMessage":"unknown op"}`)
		}
	}))
	t.Cleanup(server.Close)

	t.Setenv("BHL_API_KEY", "test-key")
	t.Setenv("BHL_API_URL", server.URL+"/api3")
	t.Setenv("BHL_OPENURL_URL", server.URL+"/openurl")
	return server
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\r\n"), "\r\n")
}

func TestExecuteTOC(t *testing.T) {
	newBHLServer(t)
	dir := t.TempDir()
	tocPath := filepath.Join(dir, "TOC_OCR.txt")
	if err := os.WriteFile(tocPath, []byte("Jones, A.\nOn taxonomy 100\nSMITH, John.\nA new species of beetle 45\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	output := filepath.Join(dir, "BHL_art_md.tsv")

	var stdout bytes.Buffer
	err := executeTOC(context.Background(), tocOptions{
		ItemID:        "101",
		TOCPath:       tocPath,
		Output:        output,
		Format:        segments.FormatTSV,
		CheckExisting: true,
	}, nil, &stdout)
	if err != nil {
		t.Fatalf("executeTOC failed: %v", err)
	}

	lines := readLines(t, output)
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d lines: %q", len(lines), lines)
	}

	first := strings.Split(lines[1], "\t")
	expected := []string{"On taxonomy ", "", "101", "5", "2", "", "1930", "", "Jones, A.", "100", "", "555", "", "", "", "4242"}
	if strings.Join(first, "|") != strings.Join(expected, "|") {
		t.Errorf("Expected row %q, got %q", expected, first)
	}

	second := strings.Split(lines[2], "\t")
	if len(second) != 16 || second[2] != "" || second[8] != "Smith, John" || second[15] != "" {
		t.Errorf("unexpected unresolved row: %q", second)
	}

	if !strings.Contains(stdout.String(), "Articles written") {
		t.Errorf("Expected summary table, got %q", stdout.String())
	}
}

func TestExecuteTOCFromStdin(t *testing.T) {
	newBHLServer(t)
	output := filepath.Join(t.TempDir(), "out.tsv")

	err := executeTOC(context.Background(), tocOptions{
		ItemID:  "101",
		TOCPath: "-",
		Output:  output,
		Format:  segments.FormatTSV,
	}, strings.NewReader("Jones, A.\nOn taxonomy 100\n"), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("executeTOC failed: %v", err)
	}

	lines := readLines(t, output)
	if len(lines) != 2 || len(strings.Split(lines[0], "\t")) != 15 {
		t.Errorf("Expected 15 column output without part id, got %q", lines)
	}
}

func TestExecuteTOCMissingAPIKey(t *testing.T) {
	t.Setenv("BHL_API_KEY", "")
	err := executeTOC(context.Background(), tocOptions{ItemID: "1"}, nil, &bytes.Buffer{})
	if err == nil {
		t.Error("Expected error without API key, got nil")
	}
}

func TestExecuteCrossref(t *testing.T) {
	newBHLServer(t)
	crossrefServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter"); got != "issn:0002-9122,from-pub-date:1930,until-pub-date:1931" {
			t.Errorf("unexpected filter %q", got)
		}
		fmt.Fprint(w, `{"status":"ok","message":{"total-results":2,"items":[
			{"title":["On taxonomy"],"DOI":"10.1000/a","volume":"5","issue":"2","page":"100-110",
			 "author":[{"given":"A.","family":"Jones"}],"published-print":{"date-parts":[[1930,4]]},"type":"journal-article"},
			{"title":["Cover"],"volume":"5","type":"other"}]}}`)
	}))
	defer crossrefServer.Close()
	t.Setenv("CROSSREF_API_URL", crossrefServer.URL)

	t.Chdir(t.TempDir())

	opts := crossrefOptions{
		ISSN:          "0002-9122",
		FromYear:      "1930",
		UntilYear:     "1931",
		Prefix:        "ajb",
		Format:        segments.FormatTSV,
		CheckExisting: true,
	}
	if err := executeCrossref(context.Background(), opts, &bytes.Buffer{}); err != nil {
		t.Fatalf("executeCrossref failed: %v", err)
	}

	lines := readLines(t, "ajb_1930_1931.tsv")
	if len(lines) != 2 {
		t.Fatalf("Expected header and 1 row, got %q", lines)
	}
	row := strings.Split(lines[1], "\t")
	expected := []string{"On taxonomy", "", "101", "5", "2", "", "1930-04", "", "Jones, A.", "100", "110", "", "", "", "10.1000/a", "4242"}
	if strings.Join(row, "|") != strings.Join(expected, "|") {
		t.Errorf("Expected row %q, got %q", expected, row)
	}
}

func TestExecuteBioStor(t *testing.T) {
	newBHLServer(t)
	output := filepath.Join(t.TempDir(), "BioStor.tsv")

	if err := executeBioStor(context.Background(), "7", output, &bytes.Buffer{}); err != nil {
		t.Fatalf("executeBioStor failed: %v", err)
	}

	lines := readLines(t, output)
	expected := []string{"BHL part id\tBioStor id", "4242\t98765", "4242\t98765"}
	if strings.Join(lines, "\n") != strings.Join(expected, "\n") {
		t.Errorf("Expected %q, got %q", expected, lines)
	}
}

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "citations", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(NewTOCCmd(), NewCrossrefCmd(), NewBioStorCmd())
	return root
}

func TestCommandValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "toc non-numeric item", args: []string{"toc", "--item", "abc"}},
		{name: "toc bad format", args: []string{"toc", "--item", "123", "--format", "xlsx"}},
		{name: "crossref bad issn", args: []string{"crossref", "--issn", "00029122", "--from", "1922", "--until", "1923", "--prefix", "ajb"}},
		{name: "crossref bad year", args: []string{"crossref", "--issn", "0002-9122", "--from", "22", "--until", "1923", "--prefix", "ajb"}},
		{name: "crossref bad prefix", args: []string{"crossref", "--issn", "0002-9122", "--from", "1922", "--until", "1923", "--prefix", "a-b"}},
		{name: "biostor non-numeric title", args: []string{"biostor", "--title", "t1"}},
		{name: "biostor missing title", args: []string{"biostor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BHL_API_KEY", "")
			root := newTestRoot()
			root.SetArgs(tt.args)
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			if err := root.Execute(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestValidators(t *testing.T) {
	if err := validateISSN("0002-912X"); err != nil {
		t.Errorf("Expected ISSN with check digit X to be valid: %v", err)
	}
	if err := validateBHLID("item", "123456"); err != nil {
		t.Errorf("Expected numeric id to be valid: %v", err)
	}
	if err := validatePrefix("ajb_2024"); err != nil {
		t.Errorf("Expected word prefix to be valid: %v", err)
	}
}

func TestSummaryRows(t *testing.T) {
	s := runSummary{
		Source:   "BHL item 1",
		Articles: []reconcile.Article{{ItemID: "1", PartID: "9"}, {}},
		Matched:  true,
		Output:   "out.tsv",
	}

	rows := s.rows()
	if len(rows) != 5 {
		t.Fatalf("Expected 5 summary rows, got %d", len(rows))
	}
	if rows[1][1] != "2" || rows[2][1] != "1" || rows[3][1] != "1" {
		t.Errorf("unexpected counts: %q", rows)
	}
}
