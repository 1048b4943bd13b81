package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/models"
)

const userIDHeader = "X-Sharer-User-Id"

// validationError is surfaced to the caller as a 400 without the
// request ever reaching the server tier.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func invalidf(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// decodeBody reads and decodes the request body, then restores it so
// the request can still be forwarded upstream.
func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return invalidf("invalid JSON body")
	}
	r.Body = io.NopCloser(bytes.NewReader(data))
	if err := json.Unmarshal(data, v); err != nil {
		return invalidf("invalid JSON body")
	}
	return nil
}

func requireUserID(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get(userIDHeader))
	if raw == "" {
		return "", invalidf("%s header is required", userIDHeader)
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return "", invalidf("invalid %s header: %s", userIDHeader, raw)
	}
	return raw, nil
}

func requirePathID(r *http.Request, name string) error {
	raw := r.PathValue(name)
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return invalidf("invalid %s: %s", name, raw)
	}
	return nil
}

func checkPagination(r *http.Request) error {
	from, err := queryInt(r, "from", 0)
	if err != nil {
		return err
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		return err
	}
	if from < 0 {
		return invalidf("from must not be negative")
	}
	if size <= 0 {
		return invalidf("size must be positive")
	}
	return nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidf("invalid %s parameter: %s", name, raw)
	}
	return value, nil
}

func checkState(r *http.Request) error {
	raw := r.URL.Query().Get("state")
	if raw == "" {
		return nil
	}
	if _, ok := models.ParseState(raw); !ok {
		return invalidf("Unknown state: %s", raw)
	}
	return nil
}

func validateUserCreate(r *http.Request) error {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		return err
	}
	if strings.TrimSpace(user.Name) == "" {
		return invalidf("user name is required")
	}
	return validateEmail(user.Email)
}

func validateUserPatch(r *http.Request) error {
	var patch models.UserPatch
	if err := decodeBody(r, &patch); err != nil {
		return err
	}
	if patch.HasEmail() {
		return validateEmail(*patch.Email)
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return invalidf("user email is required")
	}
	if !strings.Contains(email, "@") {
		return invalidf("invalid email: %s", email)
	}
	return nil
}

func validateItemCreate(r *http.Request) error {
	var in models.ItemCreate
	if err := decodeBody(r, &in); err != nil {
		return err
	}
	if strings.TrimSpace(in.Name) == "" {
		return invalidf("item name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalidf("item description is required")
	}
	if in.Available == nil {
		return invalidf("item availability is required")
	}
	return nil
}

func validateItemPatch(r *http.Request) error {
	var patch models.ItemPatch
	if err := decodeBody(r, &patch); err != nil {
		return err
	}
	if patch.Empty() {
		return invalidf("no item fields to update")
	}
	return nil
}

func validateBookingCreate(r *http.Request) error {
	var in models.BookingCreate
	if err := decodeBody(r, &in); err != nil {
		return err
	}
	if in.ItemID <= 0 {
		return invalidf("booking item is required")
	}
	if in.Start.IsZero() || in.End.IsZero() {
		return invalidf("booking start and end are required")
	}
	return nil
}

func validateApprovedParam(r *http.Request) error {
	raw := r.URL.Query().Get("approved")
	if _, err := strconv.ParseBool(raw); err != nil {
		return invalidf("invalid approved parameter: %s", raw)
	}
	return nil
}

func validateCommentCreate(r *http.Request) error {
	var in models.CommentCreate
	if err := decodeBody(r, &in); err != nil {
		return err
	}
	if strings.TrimSpace(in.Text) == "" {
		return invalidf("comment text is required")
	}
	return nil
}

func validateRequestCreate(r *http.Request) error {
	var in models.RequestCreate
	if err := decodeBody(r, &in); err != nil {
		return err
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalidf("request description is required")
	}
	return nil
}
