package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/sm8ta/station_control_console/internal/core/domain"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildPayload encodes the draft as the multipart body expected by the
// employee creation endpoint. The country travels in the URL, not the body,
// and the password confirmation is never sent.
func BuildPayload(draft domain.EmployeeDraft) (*domain.MultipartPayload, error) {
	const op = "services.BuildPayload"

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := []struct{ name, value string }{
		{domain.FieldName, draft.Name},
		{domain.FieldGender, string(draft.Gender)},
		{domain.FieldBirthDate, draft.BirthDate},
		{domain.FieldEmail, draft.Email},
		{domain.FieldAddress, draft.Address},
		{domain.FieldRole, string(draft.Role)},
		{domain.FieldBiography, draft.Biography},
		{domain.FieldPassword, draft.Password},
	}
	for _, f := range fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if p := draft.ProfilePhoto; p != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			domain.FieldProfilePhoto, quoteEscaper.Replace(p.FileName)))
		h.Set("Content-Type", p.ContentType)
		part, err := writer.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, err := part.Write(p.Data); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := writer.WriteField(domain.FieldPhoneNumber, draft.PhoneNumber); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.MultipartPayload{
		Body:        body.Bytes(),
		ContentType: writer.FormDataContentType(),
	}, nil
}
