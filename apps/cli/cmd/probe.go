package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verihttp/verihttp/packages/expect"
	"github.com/verihttp/verihttp/packages/history"
	"github.com/verihttp/verihttp/packages/http"
	"github.com/verihttp/verihttp/packages/output"
	"github.com/verihttp/verihttp/packages/timing"
)

var probeFlags struct {
	method       string
	headers      []string
	queries      []string
	body         string
	timeout      time.Duration
	basicAuth    string
	bearerToken  string
	digestAuth   string
	expectStatus int
	expectBody   []string
	repeat       int
	expectP95    time.Duration
	envFile      string
	recordPath   string
	noColor      bool
	insecure     bool
}

var probeCmd = &cobra.Command{
	Use:   "probe <url>",
	Short: "Issue one request and verify the response",
	Long: `Probe sends a single HTTP request and checks the response against
the given expectations. Body expectations use dot/bracket paths into
the JSON body, e.g. --expect-body data.users[0].email=a@b.com.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	f := probeCmd.Flags()
	f.StringVarP(&probeFlags.method, "method", "X", "GET", "HTTP method")
	f.StringArrayVarP(&probeFlags.headers, "header", "H", nil, "request header, key:value (repeatable)")
	f.StringArrayVarP(&probeFlags.queries, "query", "q", nil, "query parameter, key=value (repeatable)")
	f.StringVarP(&probeFlags.body, "body", "d", "", "request body")
	f.DurationVar(&probeFlags.timeout, "timeout", 30*time.Second, "request timeout")
	f.StringVar(&probeFlags.basicAuth, "basic-auth", "", "basic auth, user:pass")
	f.StringVar(&probeFlags.bearerToken, "bearer", "", "bearer token")
	f.StringVar(&probeFlags.digestAuth, "digest-auth", "", "digest auth, user:pass")
	f.IntVar(&probeFlags.expectStatus, "expect-status", 0, "expected status code")
	f.StringArrayVar(&probeFlags.expectBody, "expect-body", nil, "body expectation, path=value (repeatable)")
	f.IntVar(&probeFlags.repeat, "repeat", 1, "number of times to issue the request")
	f.DurationVar(&probeFlags.expectP95, "expect-p95", 0, "p95 latency bound across repeats")
	f.StringVar(&probeFlags.envFile, "env-file", "", "load environment from a dotenv file first")
	f.StringVar(&probeFlags.recordPath, "record", "", "record the outcome in a history database at this path")
	f.BoolVar(&probeFlags.noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&probeFlags.insecure, "insecure", "k", false, "skip SSL certificate validation")
}

func runProbe(cmd *cobra.Command, args []string) error {
	if probeFlags.envFile != "" {
		if err := godotenv.Load(probeFlags.envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	client := http.NewClient(http.WithValidateSSL(!probeFlags.insecure))
	builder := http.NewBuilder(client).
		Endpoint(args[0]).
		Timeout(probeFlags.timeout)

	for _, h := range probeFlags.headers {
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("malformed header %q, want key:value", h)
		}
		builder.Header(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	for _, q := range probeFlags.queries {
		key, value, ok := strings.Cut(q, "=")
		if !ok {
			return fmt.Errorf("malformed query %q, want key=value", q)
		}
		builder.QueryParam(key, value)
	}
	if probeFlags.body != "" {
		builder.Body(probeFlags.body)
	}
	if err := applyAuth(builder); err != nil {
		return err
	}

	recorder := timing.NewRecorder()
	builder.RecordLatency(recorder)

	var resp *http.Response
	for i := 0; i < max(probeFlags.repeat, 1); i++ {
		var err error
		resp, err = builder.Do(cmd.Context(), strings.ToUpper(probeFlags.method))
		if err != nil {
			return err
		}
	}

	results := evaluate(resp)
	if probeFlags.expectP95 > 0 {
		p95 := recorder.P95()
		results = append(results, output.CheckResult{
			Name:     fmt.Sprintf("p95 under %s", probeFlags.expectP95),
			Passed:   p95 <= probeFlags.expectP95,
			Err:      fmt.Errorf("p95 was %s, bound is %s", p95, probeFlags.expectP95),
			Duration: p95,
		})
	}

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(probeFlags.noColor))
	formatter.FormatResults(fmt.Sprintf("%s %s", strings.ToUpper(probeFlags.method), args[0]), results)

	failed := firstFailure(results)
	if probeFlags.recordPath != "" {
		if err := record(cmd.Context(), resp, args[0], failed); err != nil {
			return err
		}
	}
	if failed != nil {
		return fmt.Errorf("probe failed: %w", failed)
	}
	return nil
}

func applyAuth(builder *http.Builder) error {
	split := func(cred, flag string) (string, string, error) {
		user, pass, ok := strings.Cut(cred, ":")
		if !ok {
			return "", "", fmt.Errorf("malformed %s credentials, want user:pass", flag)
		}
		return user, pass, nil
	}
	if probeFlags.basicAuth != "" {
		user, pass, err := split(probeFlags.basicAuth, "--basic-auth")
		if err != nil {
			return err
		}
		builder.BasicAuth(user, pass)
	}
	if probeFlags.digestAuth != "" {
		user, pass, err := split(probeFlags.digestAuth, "--digest-auth")
		if err != nil {
			return err
		}
		builder.DigestAuth(user, pass)
	}
	if probeFlags.bearerToken != "" {
		builder.BearerToken(probeFlags.bearerToken)
	}
	return nil
}

func evaluate(resp *http.Response) []output.CheckResult {
	var results []output.CheckResult

	if probeFlags.expectStatus > 0 {
		err := expect.New(resp).Status(probeFlags.expectStatus).Err()
		results = append(results, output.CheckResult{
			Name:     fmt.Sprintf("status is %d", probeFlags.expectStatus),
			Passed:   err == nil,
			Err:      err,
			Duration: resp.Duration,
		})
	}

	for _, e := range probeFlags.expectBody {
		path, want, ok := strings.Cut(e, "=")
		if !ok {
			results = append(results, output.CheckResult{
				Name: e,
				Err:  fmt.Errorf("malformed expectation %q, want path=value", e),
			})
			continue
		}
		err := expect.New(resp).Body(path).Equals(coerce(want)).Err()
		results = append(results, output.CheckResult{
			Name:     fmt.Sprintf("body.%s equals %s", path, want),
			Passed:   err == nil,
			Err:      err,
			Duration: resp.Duration,
		})
	}

	if len(results) == 0 {
		// No explicit expectations: a 2xx answer counts as the check.
		err := expect.New(resp).Status().Satisfies(func(v any) bool {
			return resp.IsSuccess()
		}, fmt.Sprintf("expected a 2xx status, got %d", resp.StatusCode)).Err()
		results = append(results, output.CheckResult{
			Name:     "status is 2xx",
			Passed:   err == nil,
			Err:      err,
			Duration: resp.Duration,
		})
	}
	return results
}

// coerce interprets CLI expectation values the way JSON would.
func coerce(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	var f float64
	if _, err := fmt.Sscanf(s, "%g", &f); err == nil && fmt.Sprintf("%g", f) == s {
		return f
	}
	return s
}

func firstFailure(results []output.CheckResult) error {
	for _, r := range results {
		if !r.Passed {
			if r.Err != nil {
				return r.Err
			}
			return fmt.Errorf("%s failed", r.Name)
		}
	}
	return nil
}

func record(ctx context.Context, resp *http.Response, url string, failure error) error {
	store, err := history.Open(probeFlags.recordPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entry := history.Entry{
		Method:     strings.ToUpper(probeFlags.method),
		URL:        url,
		StatusCode: resp.StatusCode,
		DurationMs: resp.DurationMs(),
		Passed:     failure == nil,
	}
	if failure != nil {
		entry.Failure = failure.Error()
	}
	_, err = store.Record(ctx, entry)
	return err
}
