package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/jobmailer/internal/blob"
	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/kvstore"
	"github.com/ignite/jobmailer/internal/mailer"
	"github.com/ignite/jobmailer/internal/service/attachments"
	"github.com/ignite/jobmailer/internal/service/maillog"
	"github.com/ignite/jobmailer/internal/service/recipients"
	"github.com/ignite/jobmailer/internal/service/templates"
	"github.com/ignite/jobmailer/internal/wizard"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	tpl := templates.NewService(ctx, kvstore.NewMemoryStore())
	rcp := recipients.NewService(ctx, kvstore.NewMemoryStore())
	att := attachments.NewService(ctx, kvstore.NewMemoryStore(), blob.NewDataRefStore())
	logs := maillog.NewService(ctx, kvstore.NewMemoryStore())

	wiz := wizard.NewController(tpl, rcp, att, logs,
		mailer.NewSimulatedTransport(0),
		domain.SenderDetails{Name: "Dana Smith", Email: "dana@example.com"},
		wizard.SendOptions{Timeout: time.Second, MaxRetries: 0, Backoff: time.Millisecond},
	)

	h := NewHandlers(tpl, rcp, att, logs, wiz)
	server := httptest.NewServer(SetupRoutes(h, []string{"*"}))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTemplateEndpoints(t *testing.T) {
	server := newTestServer(t)

	// Starters are visible.
	resp, err := http.Get(server.URL + "/api/templates/")
	require.NoError(t, err)
	var list []domain.EmailTemplate
	decodeBody(t, resp, &list)
	require.Len(t, list, 2)

	// Create with a missing body is rejected.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/templates/", map[string]string{
		"name": "X", "subject": "S", "category": "referral",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Valid create.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/templates/", map[string]string{
		"name": "Referral Ask", "subject": "Hello {{name}}", "body": "Hi", "category": "referral",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.EmailTemplate
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	// Category filter.
	resp, err = http.Get(server.URL + "/api/templates/?category=referral")
	require.NoError(t, err)
	var referrals []domain.EmailTemplate
	decodeBody(t, resp, &referrals)
	assert.Len(t, referrals, 1)

	// Unknown ID.
	resp, err = http.Get(server.URL + "/api/templates/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecipientEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/recipients/", map[string]any{
		"email": "hr@acme.com", "name": "Dana", "tags": []string{"fintech"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Case-insensitive duplicate maps to 409.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/recipients/", map[string]any{
		"email": "HR@ACME.COM",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Invalid email maps to 400.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/recipients/", map[string]any{
		"email": "not-an-email",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Update and delete of unknown ids are quiet no-ops.
	resp = doJSON(t, http.MethodPut, server.URL+"/api/recipients/ghost", map[string]any{
		"name": "Nobody",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/recipients/ghost", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestImportEndpoint(t *testing.T) {
	server := newTestServer(t)

	csvText := "email,name\nnew@acme.com,Dana\nbad-row,Nope\n"
	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/recipients/import", strings.NewReader(csvText))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/csv")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Added   int `json:"added"`
		Skipped int `json:"skipped"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Skipped)
}

func uploadFile(t *testing.T, url, filename, contentType, category string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	require.NoError(t, writer.WriteField("category", category))
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAttachmentUpload(t *testing.T) {
	server := newTestServer(t)
	url := server.URL + "/api/attachments/"

	// Disallowed type maps to 415.
	resp := uploadFile(t, url, "archive.zip", "application/zip", "other", []byte("PK"))
	resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	// Valid PDF upload.
	resp = uploadFile(t, url, "resume.pdf", "application/pdf", "resume", []byte("%PDF-1.7"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var a domain.Attachment
	decodeBody(t, resp, &a)
	assert.Equal(t, "resume.pdf", a.Filename)

	// Download roundtrip.
	resp, err := http.Get(server.URL + "/api/attachments/" + a.ID + "/content")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestAttachmentTooLarge(t *testing.T) {
	server := newTestServer(t)

	big := bytes.Repeat([]byte{0x1}, domain.MaxAttachmentSize+1)
	resp := uploadFile(t, server.URL+"/api/attachments/", "huge.pdf", "application/pdf", "resume", big)
	resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestWizardFlowOverHTTP(t *testing.T) {
	server := newTestServer(t)

	// Seed a recipient.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/recipients/", map[string]any{
		"email": "hr@acme.com", "name": "Dana", "company": "Acme", "role": "Recruiter",
	})
	var rcp domain.Recipient
	decodeBody(t, resp, &rcp)

	// Advancing without a template is blocked.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/wizard/next", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Select the starter template and walk the stages.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/wizard/template", map[string]string{
		"template_id": "default-cold",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/wizard/next", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/wizard/recipients", map[string]any{
		"recipient_ids": []string{rcp.ID},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for i := 0; i < 3; i++ {
		resp = doJSON(t, http.MethodPost, server.URL+"/api/wizard/next", nil)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// Preview renders the first recipient.
	resp, err := http.Get(server.URL + "/api/wizard/preview")
	require.NoError(t, err)
	var preview struct {
		RecipientEmail string `json:"recipient_email"`
		Subject        string `json:"subject"`
	}
	decodeBody(t, resp, &preview)
	assert.Equal(t, "hr@acme.com", preview.RecipientEmail)
	assert.Contains(t, preview.Subject, "Acme")

	// Send the batch.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/wizard/send", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report struct {
		Total int `json:"total"`
		Sent  int `json:"sent"`
	}
	decodeBody(t, resp, &report)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Sent)

	// One log entry recorded as sent.
	resp, err = http.Get(server.URL + "/api/logs/")
	require.NoError(t, err)
	var logs []domain.EmailLog
	decodeBody(t, resp, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.LogSent, logs[0].Status)
}

func TestLogStatusEndpoint(t *testing.T) {
	server := newTestServer(t)

	// Run a one-recipient send to produce a log entry.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/recipients/", map[string]any{
		"email": "hr@acme.com",
	})
	var rcp domain.Recipient
	decodeBody(t, resp, &rcp)

	doJSON(t, http.MethodPost, server.URL+"/api/wizard/template", map[string]string{"template_id": "default-cold"}).Body.Close()
	doJSON(t, http.MethodPost, server.URL+"/api/wizard/next", nil).Body.Close()
	doJSON(t, http.MethodPost, server.URL+"/api/wizard/recipients", map[string]any{"recipient_ids": []string{rcp.ID}}).Body.Close()
	for i := 0; i < 3; i++ {
		doJSON(t, http.MethodPost, server.URL+"/api/wizard/next", nil).Body.Close()
	}
	doJSON(t, http.MethodPost, server.URL+"/api/wizard/send", nil).Body.Close()

	resp, err := http.Get(server.URL + "/api/logs/")
	require.NoError(t, err)
	var logs []domain.EmailLog
	decodeBody(t, resp, &logs)
	require.Len(t, logs, 1)

	// sent -> opened is allowed.
	resp = doJSON(t, http.MethodPut, server.URL+"/api/logs/"+logs[0].ID+"/status", map[string]string{
		"status": "opened",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.EmailLog
	decodeBody(t, resp, &updated)
	require.NotNil(t, updated.OpenedAt)

	// opened -> sent is rejected.
	resp = doJSON(t, http.MethodPut, server.URL+"/api/logs/"+logs[0].ID+"/status", map[string]string{
		"status": "sent",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
