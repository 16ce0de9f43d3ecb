package profiles

import (
	"fmt"
	"strings"

	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
)

// NormalizePhone reduces a phone entry to +digits and checks its length.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n := digits.Len()
	if n < 7 || n > 15 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "phone number must have 7 to 15 digits")
	}
	return "+" + digits.String(), nil
}

// normalizeLinks validates and canonicalizes the contact map. Phone-like
// channels are stored as +digits, the rest as http(s) URLs. Empty values
// drop the channel.
func normalizeLinks(links map[enums.LinkChannel]string) (map[enums.LinkChannel]string, error) {
	out := map[enums.LinkChannel]string{}
	for channel, value := range links {
		if !channel.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown link channel %q", channel))
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch channel {
		case enums.LinkChannelWhatsApp, enums.LinkChannelPhone:
			phone, err := NormalizePhone(value)
			if err != nil {
				return nil, err
			}
			out[channel] = phone
		default:
			if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s link must be an http(s) URL", channel))
			}
			out[channel] = value
		}
	}
	return out, nil
}

// ContactHrefs turns stored links into clickable targets for the public
// storefront.
func ContactHrefs(links map[enums.LinkChannel]string) map[string]string {
	out := map[string]string{}
	for channel, value := range links {
		switch channel {
		case enums.LinkChannelWhatsApp:
			out[channel.String()] = "https://wa.me/" + strings.TrimPrefix(value, "+")
		case enums.LinkChannelPhone:
			out[channel.String()] = "tel:" + value
		default:
			out[channel.String()] = value
		}
	}
	return out
}
