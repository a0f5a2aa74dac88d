package inference

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

const avatarSVG = `<svg width="400" height="280" viewBox="0 0 400 280" xmlns="http://www.w3.org/2000/svg">
<rect width="400" height="280" fill="%[1]s"/>
<circle cx="200" cy="140" r="80" fill="#ffffff"/>
<text x="200" y="150" font-family="Arial" font-size="80" fill="%[1]s" text-anchor="middle" dominant-baseline="middle">%[2]s</text>
</svg>`

// Avatar returns a deterministic placeholder image for username as a base64
// SVG data URI.
func Avatar(username string) string {
	svg := fmt.Sprintf(avatarSVG, fmt.Sprintf("hsl(%d, 70%%, 40%%)", Hue(username)), Initials(username))
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// Hue is the MD5 digest of username read as a big-endian integer, mod 360.
func Hue(username string) int {
	sum := md5.Sum([]byte(username))
	n := new(big.Int).SetBytes(sum[:])
	return int(n.Mod(n, big.NewInt(360)).Int64())
}

// Initials keeps the letters and digits of username and returns the first
// two upper-cased. A single character is doubled.
func Initials(username string) string {
	clean := []rune(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, username))

	if len(clean) >= 2 {
		return strings.ToUpper(string(clean[:2]))
	}
	return strings.ToUpper(string(clean) + string(clean))
}
