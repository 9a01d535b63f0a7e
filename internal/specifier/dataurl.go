package specifier

import "strings"

type DataURL struct {
	mimeType string
}

// The "data:" prefix is matched case-insensitively. The MIME type is
// everything before the first comma with any ";base64" suffix removed. A data
// URL without a comma is malformed, in which case "ok" is false.
func ParseDataURL(url string) (parsed DataURL, ok bool) {
	if len(url) >= len("data:") && strings.EqualFold(url[:len("data:")], "data:") {
		if comma := strings.IndexByte(url, ','); comma != -1 {
			parsed.mimeType = url[len("data:"):comma]
			if len(parsed.mimeType) >= len(";base64") &&
				strings.EqualFold(parsed.mimeType[len(parsed.mimeType)-len(";base64"):], ";base64") {
				parsed.mimeType = parsed.mimeType[:len(parsed.mimeType)-len(";base64")]
			}
			ok = true
		}
	}
	return
}

// This is the declared type exactly as written, including any parameters
func (parsed DataURL) MIMEType() string {
	return parsed.mimeType
}
