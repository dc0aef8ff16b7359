package esse3

import (
	"bytes"
	"context"
	"esse3report/lib/restyutil"
	"esse3report/lib/telemetry"
	"esse3report/lib/timezone"
	"fmt"
	"log/slog"
	"maps"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	searchPath   = "/ListaAppelliOfferta.do"
	searchFormID = "formRicercaCds"

	courseSelectName   = "cds_id"
	activitySelectName = "ad_id"

	// [S2] Scuola delle Scienze, dell'Ingegneria e della Salute; used
	// when department discovery fails outright.
	DefaultDepartmentID = "10021"
)

// plausible names the department select has gone by across esse3
// deployments, plus keyword fragments for the pattern fallback.
var (
	departmentSelectHints = []string{
		"fac_id", "prov_cds", "dipartimento", "dip_id",
		"department", "facolta", "facolta_id",
	}
	departmentKeywords = []string{
		"dipartimento", "facolta", "department", "faculty", "dip", "fac",
	}
)

type ClientOptions struct {
	BaseUrl      string
	Timeout      time.Duration
	RequestDelay time.Duration
	// department options are kept only when their label starts with
	// one of these prefixes; esse3 mixes schools in with placeholder
	// options
	SchoolPrefixes []string
	// when non-empty, every request/response pair is dumped here
	DebugDir string
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	delay          time.Duration
	schoolPrefixes []string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 10
	}
	prefixes := opts.SchoolPrefixes
	if len(prefixes) == 0 {
		prefixes = []string{"Scuola", "[S"}
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", "Mozilla/5.0 (Linux; x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "scrapers/esse3/http")
	if opts.DebugDir != "" {
		output, err := restyutil.NewFilesystemOutput(opts.DebugDir)
		if err != nil {
			return nil, err
		}
		output.Attach(client)
	}

	return &Client{
		BaseUrl:        baseUrl,
		Http:           client,
		delay:          opts.RequestDelay,
		schoolPrefixes: prefixes,
	}, nil
}

func (c *Client) getSearchPage(ctx context.Context) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(searchPath)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

func (c *Client) postSearch(ctx context.Context, form map[string]string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(searchPath)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// academicYear formats the esse3 "aa_off_desc" parameter for the
// academic year the given time falls in.
func academicYear(now time.Time) string {
	year := now.Year()
	if now.Month() >= 8 {
		return fmt.Sprintf("%d/%d", year, year+1)
	}
	return fmt.Sprintf("%d/%d", year-1, year)
}

// FormData fetches the search page and collects the hidden state
// parameters of the search form, plus the base query parameters. The
// default search window is six months from today; callers override
// data_da/data_a when they have their own window.
func (c *Client) FormData(ctx context.Context) (map[string]string, error) {
	doc, err := c.getSearchPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load search form: %w", err)
	}

	form := HiddenInputs(doc, searchFormID)
	today := timezone.Now()
	form["data_da"] = FormatDate(today)
	form["data_a"] = FormatDate(today.AddDate(0, 0, 180))
	form["fac_id"] = DefaultDepartmentID
	form["TIPO_FORM"] = "1"

	slog.DebugContext(ctx, "collected search form parameters", "count", len(form))
	return form, nil
}

// Departments fetches the catalog of departments (schools). The
// select holding them is located by discovery since its name is not
// stable across deployments.
func (c *Client) Departments(ctx context.Context) ([]NamedEntity, error) {
	doc, err := c.getSearchPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch department catalog: %w", err)
	}

	field, err := DiscoverSelect(doc, departmentSelectHints, departmentKeywords)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "department select located", "name", field.Name, "options", len(field.Options))

	var departments []NamedEntity
	for _, opt := range field.Options {
		if opt.Value == "0" || !c.isSchoolLabel(opt.Label) {
			continue
		}
		departments = append(departments, NamedEntity{
			ID:   opt.Value,
			Name: opt.Label,
		})
	}

	slog.InfoContext(ctx, "fetched departments", "count", len(departments))
	return departments, nil
}

func (c *Client) isSchoolLabel(label string) bool {
	for _, prefix := range c.schoolPrefixes {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}
	return false
}

// Courses fetches the course catalog, optionally scoped to a
// department. Scoping needs an extra form round-trip: esse3 re-renders
// the page with fresh hidden state once a department is selected.
func (c *Client) Courses(ctx context.Context, departmentID string) ([]NamedEntity, error) {
	form, err := c.FormData(ctx)
	if err != nil {
		return nil, err
	}

	if departmentID != "" {
		form["fac_id"] = departmentID
		primed, err := c.postSearch(ctx, form)
		if err != nil {
			return nil, fmt.Errorf("failed to select department %q: %w", departmentID, err)
		}

		form = HiddenInputs(primed, searchFormID)
		form["fac_id"] = departmentID
		form["ad_name"] = ""
		form["aa_off_desc"] = academicYear(timezone.Now())
		form["stu_status"] = "1"
		form["ad_mod"] = ""
		form["tipoRicAd"] = ""
		form["btnSelect1"] = "Avanti"
	}

	doc, err := c.postSearch(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch course catalog: %w", err)
	}

	sel := doc.Find(fmt.Sprintf("select[name=%s]", courseSelectName))
	if sel.Length() == 0 {
		slog.WarnContext(ctx, "course select not found in page")
		return nil, nil
	}

	var courses []NamedEntity
	for _, opt := range buildSelectField(sel.First()).Options {
		// placeholder options carry labels too short to be a course
		if len(opt.Label) <= 3 {
			continue
		}
		courses = append(courses, NamedEntity{
			ID:       opt.Value,
			Name:     opt.Label,
			ParentID: departmentID,
		})
	}

	slog.InfoContext(ctx, "fetched courses", "count", len(courses), "department", departmentID)
	return courses, nil
}

// Activities fetches the teaching activities available under a course.
func (c *Client) Activities(ctx context.Context, form map[string]string, courseID string) ([]ActivityRef, error) {
	form = maps.Clone(form)
	form[courseSelectName] = courseID

	doc, err := c.postSearch(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}

	sel := doc.Find(fmt.Sprintf("select[name=%s]", activitySelectName))
	if sel.Length() == 0 {
		slog.WarnContext(ctx, "activity select not found in page", "course", courseID)
		return nil, nil
	}

	var activities []ActivityRef
	for _, opt := range buildSelectField(sel.First()).Options {
		activities = append(activities, ActivityRef{
			ID:    opt.Value,
			Label: opt.Label,
		})
	}

	slog.InfoContext(ctx, "fetched activities", "count", len(activities), "course", courseID)
	return activities, nil
}

// SearchExams runs the exam search for one activity and extracts
// whatever records the result page yields. The politeness delay is
// applied here, after the request, so multi-activity runs pace
// themselves without the caller having to care.
func (c *Client) SearchExams(ctx context.Context, form map[string]string, activity ActivityRef) ([]RawExamRecord, error) {
	form = maps.Clone(form)
	form[activitySelectName] = activity.ID
	form["btnSubmit"] = "Avvia Ricerca"

	doc, err := c.postSearch(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("exam search failed for %q: %w", activity.Label, err)
	}

	records := Extract(ctx, doc)
	for i := range records {
		records[i].ActivityLabel = activity.Label
	}

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return records, ctx.Err()
		}
	}

	return records, nil
}
