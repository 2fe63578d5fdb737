package client

import (
	"encoding/json"
	"net/http"
	"strconv"

	"learnmart/apperrors"
	"learnmart/models"
	"learnmart/validators"

	"github.com/go-resty/resty/v2"
)

// TokenSource supplies the bearer token attached to authenticated calls.
// auth.TokenStore implements it; StaticToken covers tests and dev tooling.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed bearer token
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// Client talks to the marketplace REST API. It implements authoring.API.
// Every failure is surfaced to the caller; there are no retries here.
type Client struct {
	http   *resty.Client
	tokens TokenSource
}

// New builds a client for the API rooted at baseURL
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(baseURL),
		tokens: tokens,
	}
}

// envelope is the response wrapper every endpoint uses
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// authed returns a request carrying the session token, failing fast when
// the stored token is missing or expired.
func (c *Client) authed() (*resty.Request, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	return c.http.R().SetAuthToken(token), nil
}

// decode maps the transport outcome onto the shared error taxonomy and
// unmarshals the data payload into out when given.
func decode(resp *resty.Response, err error, out interface{}) error {
	if err != nil {
		return &apperrors.NetworkError{Message: err.Error()}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return apperrors.ErrNotFound
	}

	var env envelope
	if uerr := json.Unmarshal(resp.Body(), &env); uerr != nil {
		return &apperrors.NetworkError{StatusCode: resp.StatusCode(), Message: "malformed response body"}
	}
	if !resp.IsSuccess() || !env.Status {
		return &apperrors.NetworkError{StatusCode: resp.StatusCode(), Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if uerr := json.Unmarshal(env.Data, out); uerr != nil {
			return &apperrors.NetworkError{StatusCode: resp.StatusCode(), Message: "malformed response payload"}
		}
	}
	return nil
}

func (c *Client) FetchCourse(id string) (*models.Course, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}
	var course models.Course
	resp, err := req.Get("/courses/" + id)
	if err := decode(resp, err, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) CreateCourse(form validators.CourseMetadataForm) (*models.Course, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}

	req.SetFormData(map[string]string{
		"name":         form.Name,
		"description":  form.Description,
		"price":        strconv.FormatFloat(form.Price, 'f', -1, 64),
		"category_id":  form.CategoryID,
		"level":        form.Level,
		"benefits":     form.Benefits,
		"tags":         jsonField(form.Tags),
		"instructions": jsonField(form.Instructions),
	})
	if form.ThumbnailPath != "" {
		req.SetFile("thumbnail", form.ThumbnailPath)
	}

	var course models.Course
	resp, err := req.Post("/courses")
	if err := decode(resp, err, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) PatchCourse(id string, changed map[string]interface{}) (*models.Course, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}

	for key, value := range changed {
		if key == "thumbnail" {
			req.SetFile("thumbnail", value.(string))
			continue
		}
		req.SetFormData(map[string]string{key: stringField(value)})
	}

	var course models.Course
	resp, err := req.Patch("/courses/" + id)
	if err := decode(resp, err, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) CreateSection(courseID, name string) (*models.Course, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}
	var course models.Course
	resp, err := req.
		SetBody(map[string]string{"name": name}).
		Post("/courses/" + courseID + "/sections")
	if err := decode(resp, err, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) RenameSection(sectionID, name string) (*models.Course, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}
	var course models.Course
	resp, err := req.
		SetBody(map[string]string{"name": name}).
		Put("/sections/" + sectionID)
	if err := decode(resp, err, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) DeleteSection(sectionID, courseID string) (*models.Course, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}
	var course models.Course
	resp, err := req.
		SetQueryParam("courseId", courseID).
		Delete("/sections/" + sectionID)
	if err := decode(resp, err, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) CreateLecture(sectionID string, form validators.LectureForm) (*models.Section, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}

	req.SetFormData(map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"duration":    strconv.FormatFloat(form.Duration, 'f', -1, 64),
	})
	req.SetFile("video", form.VideoPath)
	if form.SupplementPath != "" {
		req.SetFile("supplement", form.SupplementPath)
	}

	var section models.Section
	resp, err := req.Post("/sections/" + sectionID + "/lectures")
	if err := decode(resp, err, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

func (c *Client) UpdateLecture(sectionID, lectureID string, changed map[string]interface{}) (*models.Section, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}

	for key, value := range changed {
		switch key {
		case "video", "supplement":
			req.SetFile(key, value.(string))
		default:
			req.SetFormData(map[string]string{key: stringField(value)})
		}
	}

	var section models.Section
	resp, err := req.Put("/sections/" + sectionID + "/lectures/" + lectureID)
	if err := decode(resp, err, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

func (c *Client) DeleteLecture(lectureID, sectionID string) (*models.Section, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}
	var section models.Section
	resp, err := req.Delete("/sections/" + sectionID + "/lectures/" + lectureID)
	if err := decode(resp, err, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

func (c *Client) SaveExam(courseID string, payload json.RawMessage) (*models.Course, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}
	var course models.Course
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(payload)).
		Put("/courses/" + courseID + "/exam")
	if err := decode(resp, err, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) PublishCourse(courseID string, payload models.PublishPayload) (*models.Course, error) {
	req, err := c.authed()
	if err != nil {
		return nil, err
	}

	req.SetFormData(map[string]string{
		"name":         payload.Name,
		"description":  payload.Description,
		"price":        strconv.FormatFloat(payload.Price, 'f', -1, 64),
		"benefits":     payload.Benefits,
		"category_id":  payload.CategoryID,
		"level":        payload.Level,
		"tags":         jsonField(payload.Tags),
		"instructions": jsonField(payload.Instructions),
		"status":       payload.Status,
	})
	if len(payload.Exam) > 0 {
		req.SetFormData(map[string]string{"exam": string(payload.Exam)})
	}
	if payload.ThumbnailPath != "" {
		req.SetFile("thumbnail", payload.ThumbnailPath)
	}

	var course models.Course
	resp, err := req.Post("/courses/" + courseID + "/publish")
	if err := decode(resp, err, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// FetchCategories lists the active catalog categories. Public endpoint, no
// token attached.
func (c *Client) FetchCategories() ([]models.Category, error) {
	var categories []models.Category
	resp, err := c.http.R().Get("/categories")
	if err := decode(resp, err, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchCatalogPage fetches the three course collections the catalog filter
// engine merges. Public endpoint, no token attached.
func (c *Client) FetchCatalogPage(categoryID string) (*models.CatalogPage, error) {
	var page models.CatalogPage
	resp, err := c.http.R().Get("/categories/" + categoryID + "/page")
	if err := decode(resp, err, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func jsonField(values []string) string {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return string(raw)
}

func stringField(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, _ := json.Marshal(v)
		return string(raw)
	}
}
