package common

import (
	"crypto/sha256"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	NA       = "N/A"
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// NextID returns a new snowflake row ID.
func NextID() int64 {
	return snowflakeNode.Generate().Int64()
}

func GetSecretSalt() string {
	salt := os.Getenv("JUTEHUS_SECRET_SALT")
	if salt == "" {
		salt = "jutehus-secret"
	}
	return salt
}

func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// SlugPattern is the canonical form every slug must satisfy before insert.
var SlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Danish letters do not decompose under NFD, so they are mapped before the
// diacritic strip.
var slugReplacer = strings.NewReplacer(
	"æ", "ae", "Æ", "ae",
	"ø", "o", "Ø", "o",
	"å", "a", "Å", "a",
	"ß", "ss",
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a display name into a URL slug: transliterate Danish
// letters, strip diacritics, lowercase, collapse everything else to single
// hyphens.
func Slugify(name string) string {
	s := slugReplacer.Replace(name)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MustMakeDir creates dir and all parents, ignoring pre-existing dirs.
func MustMakeDir(path string) {
	if !FileExists(path) {
		_ = os.MkdirAll(path, 0o755)
	}
}

// InSlice reports whether v is present in vals.
func InSlice(v string, vals []string) bool {
	for _, item := range vals {
		if item == v {
			return true
		}
	}
	return false
}
