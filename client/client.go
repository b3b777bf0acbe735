// Package client talks to the overtime console API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"otconsole/models"
)

var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Session carries the credentials of a logged-in user. Every call that needs
// authentication takes it explicitly.
type Session struct {
	Token        string              `json:"token"`
	User         *models.User        `json:"user"`
	Capabilities []models.Capability `json:"capabilities"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the service at baseURL. A nil httpClient uses a
// client with a 30 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (c *Client) newRequest(ctx context.Context, s *Session, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if s != nil && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	return req, nil
}

// send performs the request and returns the raw response for 2xx statuses.
// The caller closes the body.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{Status: resp.StatusCode}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.Details = env.Error.Details
	}
	return nil, apiErr
}

// do sends a JSON request and decodes the data field of the envelope into out.
func (c *Client) do(ctx context.Context, s *Session, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, s, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.do(ctx, nil, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Health(ctx context.Context) error {
	err := c.do(ctx, nil, http.MethodGet, "/api/health", nil, nil, nil)
	return err
}

func (c *Client) TripleOTDates(ctx context.Context, s *Session) ([]models.TripleOTDate, error) {
	var dates []models.TripleOTDate
	err := c.do(ctx, s, http.MethodGet, "/api/triple-ot", nil, nil, &dates)
	return dates, err
}

func (c *Client) Employees(ctx context.Context, s *Session) ([]models.Employee, error) {
	var employees []models.Employee
	err := c.do(ctx, s, http.MethodGet, "/api/employee", nil, nil, &employees)
	return employees, err
}

// EntryInput is what a form or import row submits for one overtime entry.
type EntryInput struct {
	EmployeeNo string `json:"employee_no"`
	Date       string `json:"date"`
	Shift      string `json:"shift,omitempty"`
	InTime     string `json:"inTime"`
	OutTime    string `json:"outTime"`
	Reason     string `json:"reason,omitempty"`
	ClientRef  string `json:"client_ref,omitempty"`
}

func (c *Client) CreateEntry(ctx context.Context, s *Session, in EntryInput) (*models.OvertimeEntry, error) {
	var entry models.OvertimeEntry
	if err := c.do(ctx, s, http.MethodPost, "/api/overtime", nil, in, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

type Classification struct {
	Valid        bool    `json:"valid"`
	Error        string  `json:"error"`
	Shift        string  `json:"shift"`
	InTime       string  `json:"inTime"`
	OutTime      string  `json:"outTime"`
	IsNightShift bool    `json:"isNightShift"`
	Normal       float64 `json:"ot_normal_hours"`
	Double       float64 `json:"ot_double_hours"`
	Triple       float64 `json:"ot_triple_hours"`
	Total        float64 `json:"total_hours"`
	Bucket       string  `json:"bucket"`
}

// Classify asks the service to classify an entry without storing it.
func (c *Client) Classify(ctx context.Context, s *Session, in EntryInput) (*Classification, error) {
	var out Classification
	if err := c.do(ctx, s, http.MethodPost, "/api/overtime/classify", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ApprovalResult struct {
	ID    uint         `json:"id"`
	OK    bool         `json:"ok"`
	Stage models.Stage `json:"stage"`
	Error string       `json:"error"`
}

// SetApproval moves the entries to stage. Per-entry failures are reported in
// the results, not as an error.
func (c *Client) SetApproval(ctx context.Context, s *Session, ids []uint, stage models.Stage) ([]ApprovalResult, error) {
	var results []ApprovalResult
	body := map[string]interface{}{"ids": ids, "stage": stage}
	if err := c.do(ctx, s, http.MethodPut, "/api/overtime/approval", nil, body, &results); err != nil {
		return nil, err
	}
	return results, nil
}

type ReportGroup struct {
	EmployeeNo   string                 `json:"employee_no"`
	EmployeeName string                 `json:"employee_name"`
	Year         int                    `json:"year"`
	Month        int                    `json:"month"`
	Normal       float64                `json:"total_ot_normal_hours"`
	Double       float64                `json:"total_ot_double_hours"`
	Triple       float64                `json:"total_ot_triple_hours"`
	Confirmed    float64                `json:"total_confirmed_hours"`
	NightShifts  int                    `json:"night_shift_count"`
	EntryCount   int                    `json:"entry_count"`
	Entries      []models.OvertimeEntry `json:"entries"`
}

type ReportSummary struct {
	Normal      float64 `json:"total_ot_normal_hours"`
	Double      float64 `json:"total_ot_double_hours"`
	Triple      float64 `json:"total_ot_triple_hours"`
	Confirmed   float64 `json:"total_confirmed_hours"`
	NightShifts int     `json:"night_shift_count"`
	EntryCount  int     `json:"entry_count"`
}

type MonthlyReport struct {
	From    string        `json:"startDate"`
	To      string        `json:"endDate"`
	Groups  []ReportGroup `json:"groups"`
	Summary ReportSummary `json:"summary"`
}

func reportQuery(from, to string) url.Values {
	q := url.Values{}
	if from != "" {
		q.Set("startDate", from)
	}
	if to != "" {
		q.Set("endDate", to)
	}
	return q
}

func (c *Client) MonthlyReport(ctx context.Context, s *Session, from, to string) (*MonthlyReport, error) {
	var m MonthlyReport
	if err := c.do(ctx, s, http.MethodGet, "/api/overtime/monthly-report", reportQuery(from, to), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ExportReport streams the report in format (xlsx or csv) to w.
func (c *Client) ExportReport(ctx context.Context, s *Session, from, to, format string, w io.Writer) error {
	q := reportQuery(from, to)
	q.Set("format", format)
	req, err := c.newRequest(ctx, s, http.MethodGet, "/api/overtime/monthly-report/export", q, nil)
	if err != nil {
		return err
	}
	return c.download(req, w)
}

// ConvertScans uploads a scanner log and streams the sorted spreadsheet to w.
func (c *Client) ConvertScans(ctx context.Context, s *Session, log io.Reader, w io.Writer) error {
	req, err := c.newRequest(ctx, s, http.MethodPost, "/api/scanner/convert", nil, log)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")
	return c.download(req, w)
}

func (c *Client) download(req *http.Request, w io.Writer) error {
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.Copy(w, resp.Body)
	return err
}
