package main

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	ieeeBinary     string
	ieeeBinaryOnce sync.Once
	ieeeBinaryErr  error
)

// getIEEEBinary builds the ieee binary once and returns its path.
func getIEEEBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping CLI integration test in short mode")
	}
	ieeeBinaryOnce.Do(func() {
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			ieeeBinaryErr = os.ErrInvalid
			return
		}

		tmpDir, err := os.MkdirTemp("", "ieee-test-*")
		if err != nil {
			ieeeBinaryErr = err
			return
		}
		ieeeBinary = filepath.Join(tmpDir, "ieee")

		cmd := exec.Command("go", "build", "-o", ieeeBinary, ".")
		cmd.Dir = filepath.Dir(filename)
		if output, err := cmd.CombinedOutput(); err != nil {
			ieeeBinaryErr = &buildError{output: string(output), err: err}
		}
	})
	if ieeeBinaryErr != nil {
		t.Fatalf("failed to build ieee: %v", ieeeBinaryErr)
	}
	return ieeeBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

// setupWorkspace runs `ieee init` in a fresh directory.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if out, err := runIEEE(t, dir, "init"); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, out)
	}
	return dir
}

// runIEEE executes the binary in dir with an empty global config.
func runIEEE(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getIEEEBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(dir, ".config-home"),
		"S2_API_KEY=",
		"LOG_LEVEL=ERROR",
	)
	output, err := cmd.Output()
	return string(output), err
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

func addRef(t *testing.T, dir string, args ...string) RefResponse {
	t.Helper()
	out, err := runIEEE(t, dir, append([]string{"ref", "add"}, args...)...)
	if err != nil {
		t.Fatalf("ref add failed: %v\nOutput: %s", err, out)
	}
	var resp RefResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, out)
	}
	return resp
}

func listRefs(t *testing.T, dir string) RefListResponse {
	t.Helper()
	out, err := runIEEE(t, dir, "ref", "list")
	if err != nil {
		t.Fatalf("ref list failed: %v\nOutput: %s", err, out)
	}
	var resp RefListResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, out)
	}
	return resp
}

func TestCLIReferenceLifecycle(t *testing.T) {
	dir := setupWorkspace(t)

	first := addRef(t, dir, "--title", "Deep Learning", "-a", "Y. LeCun", "-a", "Y. Bengio",
		"--journal", "Nature", "--volume", "521", "--pages", "436-444", "--year", "2015",
		"--doi", "10.1038/nature14539")
	if first.Reference.CitationNumber != 1 {
		t.Errorf("first citation number = %d, want 1", first.Reference.CitationNumber)
	}
	wantIEEE := `[1] Y. LeCun, and Y. Bengio, "Deep Learning", Nature, vol. 521, pp. 436-444, 2015. doi: 10.1038/nature14539`
	if first.Reference.FormattedIEEE != wantIEEE {
		t.Errorf("formatted = %q\nwant %q", first.Reference.FormattedIEEE, wantIEEE)
	}

	addRef(t, dir, "--title", "Attention Is All You Need", "-a", "A. Vaswani", "--year", "2017")
	addRef(t, dir, "--title", "Graph Attention Networks", "-a", "P. Velickovic", "--year", "2018")

	if got := listRefs(t, dir); got.Count != 3 || got.DocumentID != DefaultDocumentID {
		t.Fatalf("list = %+v, want 3 refs in %s", got, DefaultDocumentID)
	}

	// Same DOI in the same document is a data error.
	_, err := runIEEE(t, dir, "ref", "add", "--title", "Dup", "--doi", "10.1038/NATURE14539")
	if code := exitCode(err); code != ExitDataError {
		t.Errorf("duplicate DOI exit code = %d, want %d", code, ExitDataError)
	}

	out, err := runIEEE(t, dir, "ref", "delete", "2", "--reformat")
	if err != nil {
		t.Fatalf("ref delete failed: %v\nOutput: %s", err, out)
	}
	var del DeleteResponse
	if err := json.Unmarshal([]byte(out), &del); err != nil {
		t.Fatal(err)
	}
	if del.Deleted.Title != "Attention Is All You Need" || del.Renumbered != 1 {
		t.Errorf("delete = %+v", del)
	}

	list := listRefs(t, dir)
	if list.Count != 2 {
		t.Fatalf("count after delete = %d, want 2", list.Count)
	}
	last := list.References[1]
	if last.CitationNumber != 2 || last.Title != "Graph Attention Networks" {
		t.Errorf("last ref = %+v", last)
	}
	if !strings.HasPrefix(last.FormattedIEEE, "[2] ") {
		t.Errorf("reformatted string = %q, want [2] prefix", last.FormattedIEEE)
	}

	out, err = runIEEE(t, dir, "ref", "update", "1", "--issue", "7553")
	if err != nil {
		t.Fatalf("ref update failed: %v\nOutput: %s", err, out)
	}
	if !strings.Contains(out, "no. 7553") {
		t.Errorf("update output missing regenerated string: %s", out)
	}

	if _, err := runIEEE(t, dir, "ref", "delete", "9"); exitCode(err) != ExitDataError {
		t.Errorf("deleting missing ref exit code = %d, want %d", exitCode(err), ExitDataError)
	}
}

func TestCLISearchAndExport(t *testing.T) {
	dir := setupWorkspace(t)
	addRef(t, dir, "--title", "Deep Learning", "-a", "Y. LeCun", "--journal", "Nature", "--year", "2015",
		"--doi", "10.1038/nature14539")
	addRef(t, dir, "--title", "Graph Attention Networks", "-a", "P. Velickovic", "--year", "2018")

	out, err := runIEEE(t, dir, "search", "attention")
	if err != nil {
		t.Fatalf("search failed: %v\nOutput: %s", err, out)
	}
	var found RefListResponse
	if err := json.Unmarshal([]byte(out), &found); err != nil {
		t.Fatal(err)
	}
	if found.Count != 1 || found.References[0].Title != "Graph Attention Networks" {
		t.Errorf("search = %+v", found)
	}

	out, err = runIEEE(t, dir, "search", "deep", "--year", "2016:")
	if err != nil {
		t.Fatalf("search with year failed: %v\nOutput: %s", err, out)
	}
	if err := json.Unmarshal([]byte(out), &found); err != nil {
		t.Fatal(err)
	}
	if found.Count != 0 {
		t.Errorf("year filter should exclude 2015, got %+v", found)
	}

	bib := filepath.Join(dir, "refs.bib")
	if out, err := runIEEE(t, dir, "export", "-o", bib); err != nil {
		t.Fatalf("export failed: %v\nOutput: %s", err, out)
	}
	data, err := os.ReadFile(bib)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "\n@") != 1 || !strings.Contains(string(data), "doi = {10.1038/nature14539}") {
		t.Errorf("unexpected BibTeX:\n%s", data)
	}

	out, err = runIEEE(t, dir, "export", "-o", bib, "--append")
	if err != nil {
		t.Fatalf("export --append failed: %v\nOutput: %s", err, out)
	}
	var res ExportResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.Count != 0 || res.Skipped != 2 {
		t.Errorf("append result = %+v, want 0 exported, 2 skipped", res)
	}

	out, err = runIEEE(t, dir, "export", "--ieee")
	if err != nil {
		t.Fatalf("export --ieee failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "[2] P. Velickovic") {
		t.Errorf("IEEE export = %q", out)
	}

	out, err = runIEEE(t, dir, "rebuild")
	if err != nil {
		t.Fatalf("rebuild failed: %v\nOutput: %s", err, out)
	}
	if !strings.Contains(out, `"references": 2`) {
		t.Errorf("rebuild output = %s", out)
	}
}

func TestCLIImportBibTeX(t *testing.T) {
	dir := setupWorkspace(t)
	bib := filepath.Join(dir, "in.bib")
	content := `@inproceedings{he2016,
  author = {He, Kaiming and Zhang, Xiangyu},
  title = {Deep Residual Learning},
  booktitle = {CVPR},
  pages = {770--778},
  year = {2016}
}`
	if err := os.WriteFile(bib, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runIEEE(t, dir, "ref", "import", bib, "--doc", "camera-ready")
	if err != nil {
		t.Fatalf("import failed: %v\nOutput: %s", err, out)
	}
	var res ImportResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Imported) != 1 {
		t.Fatalf("imported = %+v", res.Imported)
	}
	want := `[1] Kaiming He, and Xiangyu Zhang, "Deep Residual Learning", CVPR, pp. 770-778, 2016.`
	if got := res.Imported[0].FormattedIEEE; got != want {
		t.Errorf("formatted = %q\nwant %q", got, want)
	}

	if got := listRefs(t, dir); got.Count != 0 {
		t.Errorf("default document should be empty, got %d", got.Count)
	}
}

func TestCLIParseAndPreview(t *testing.T) {
	dir := t.TempDir()
	draft := filepath.Join(dir, "draft.md")
	if err := os.WriteFile(draft, []byte(markdownDraft), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runIEEE(t, dir, "parse", draft)
	if err != nil {
		t.Fatalf("parse failed: %v\nOutput: %s", err, out)
	}
	var parsed struct {
		Title      string   `json:"title"`
		Keywords   []string `json:"keywords"`
		References []string `json:"references"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.Title != "Sparse Attention at Scale" || len(parsed.References) != 2 {
		t.Errorf("parse = %+v", parsed)
	}

	out, err = runIEEE(t, dir, "--human", "preview", draft, "--width", "60")
	if err != nil {
		t.Fatalf("preview failed: %v\nOutput: %s", err, out)
	}
	for _, want := range []string{"Sparse Attention at Scale", "I. INTRODUCTION", "REFERENCES", "[1] A. Author"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}
}

func TestCLIConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := runIEEE(t, dir, "ref", "list"); exitCode(err) != ExitConfigError {
		t.Errorf("ref list outside workspace exit code = %d, want %d", exitCode(err), ExitConfigError)
	}

	if out, err := runIEEE(t, dir, "init"); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, out)
	}
	if _, err := runIEEE(t, dir, "init"); exitCode(err) != ExitConfigError {
		t.Errorf("second init exit code = %d, want %d", exitCode(err), ExitConfigError)
	}
	if _, err := runIEEE(t, dir, "config", "wrap-width", "10"); exitCode(err) != ExitConfigError {
		t.Errorf("invalid wrap-width exit code = %d, want %d", exitCode(err), ExitConfigError)
	}
	if out, err := runIEEE(t, dir, "config", "wrap_width", "80"); err != nil {
		t.Errorf("config set failed: %v\nOutput: %s", err, out)
	}
	out, err := runIEEE(t, dir, "config", "wrap-width")
	if err != nil || !strings.Contains(out, `"wrap_width": "80"`) {
		t.Errorf("config get = %q, %v", out, err)
	}
}
