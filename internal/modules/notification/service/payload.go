package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/reelog/reelog-backend/internal/entity"
	"gorm.io/datatypes"
)

// Payload is the tagged union of notification payloads: each variant
// names its template id and declares the exact placeholder fields that
// template expects, instead of an untyped bag the template hopefully
// matches.
type Payload interface {
	TemplateID() uint
}

// LoginPayload carries no placeholders; the login template is fully
// literal.
type LoginPayload struct{}

func (LoginPayload) TemplateID() uint { return entity.TemplateLogin }

type ReviewCommentPayload struct {
	Username string `json:"username"`
	MovieID  int64  `json:"movieId"`
	Icon     string `json:"icon,omitempty"`
}

func (ReviewCommentPayload) TemplateID() uint { return entity.TemplateReviewComment }

type ReviewLikePayload struct {
	Username string `json:"username"`
	MovieID  int64  `json:"movieId"`
	Icon     string `json:"icon,omitempty"`
}

func (ReviewLikePayload) TemplateID() uint { return entity.TemplateReviewLike }

func encodePayload(p Payload) (datatypes.JSON, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification payload: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// decodeFields flattens a stored payload into the string map the
// template engine substitutes from. Numbers keep their literal form
// (json.Number) so ids round-trip without float formatting.
func decodeFields(raw datatypes.JSON) map[string]string {
	fields := make(map[string]string)
	if len(raw) == 0 {
		return fields
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return fields
	}

	for k, v := range obj {
		switch val := v.(type) {
		case string:
			fields[k] = val
		case json.Number:
			fields[k] = val.String()
		case bool:
			if val {
				fields[k] = "1"
			} else {
				fields[k] = "0"
			}
		case nil:
			// absent value renders as empty
		default:
			fields[k] = fmt.Sprint(val)
		}
	}
	return fields
}
