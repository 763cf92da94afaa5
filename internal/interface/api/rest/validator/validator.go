package validator

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"media-fetch-api/internal/interface/api/rest/dto/auth"
	"media-fetch-api/internal/interface/api/rest/dto/download"
	"media-fetch-api/internal/platform"
)

func ValidatePage(page string) (int, error) {
	p := 1
	if page != "" {
		p, err := strconv.Atoi(page)
		if err != nil || p < 1 {
			return p, errors.New("invalid page")
		}
		return p, nil
	}

	return p, nil
}

func ValidateUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("user_id must be a positive integer")
	}
	return id, nil
}

func ValidateDownload(r download.Request) map[string]string {
	errs := make(map[string]string)

	rawURL := strings.TrimSpace(r.URL)

	if r.UserID <= 0 {
		errs["user_id"] = "user_id is required"
	}

	if rawURL == "" {
		errs["url"] = "url is required"
	} else if u, err := url.Parse(rawURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs["url"] = "url must start with http:// or https://"
	}

	if r.Format == "" {
		errs["format"] = "format is required"
	} else if !platform.ValidFormat(r.Format) {
		errs["format"] = "format must be one of: video, audio, medium, small"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}
	if r.Password == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
