package enums

import "fmt"

// LinkChannel enumerates the contact and social links a profile may publish.
type LinkChannel string

const (
	LinkChannelInstagram       LinkChannel = "instagram"
	LinkChannelFacebook        LinkChannel = "facebook"
	LinkChannelTikTok          LinkChannel = "tiktok"
	LinkChannelWhatsApp        LinkChannel = "whatsapp"
	LinkChannelWebsite         LinkChannel = "website"
	LinkChannelExternalCatalog LinkChannel = "external_catalog"
	LinkChannelPhone           LinkChannel = "phone"
)

var validLinkChannels = []LinkChannel{
	LinkChannelInstagram,
	LinkChannelFacebook,
	LinkChannelTikTok,
	LinkChannelWhatsApp,
	LinkChannelWebsite,
	LinkChannelExternalCatalog,
	LinkChannelPhone,
}

// String implements fmt.Stringer.
func (c LinkChannel) String() string {
	return string(c)
}

// IsValid reports whether the value is a known LinkChannel.
func (c LinkChannel) IsValid() bool {
	for _, candidate := range validLinkChannels {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseLinkChannel converts raw input into a LinkChannel.
func ParseLinkChannel(value string) (LinkChannel, error) {
	for _, candidate := range validLinkChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid link channel %q", value)
}
