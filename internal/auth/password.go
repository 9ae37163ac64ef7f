package auth

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/klauspost/compress/gzip"
	"github.com/xrash/smetrics"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/finance-server/internal/apperror"
)

const (
	MinPasswordLength = 8
	maxSimilarity     = 0.7
)

//go:embed common_passwords.txt
var commonPasswordsFile string

var nonWord = regexp.MustCompile(`\W+`)

type passwordSet map[string]struct{}

// commonPasswords starts as the embedded list; LoadCommonPasswords swaps in a
// larger one at startup.
var commonPasswords atomic.Pointer[passwordSet]

func init() {
	set := make(passwordSet)
	if err := readCommonPasswords(strings.NewReader(commonPasswordsFile), set); err != nil {
		panic(fmt.Sprintf("embedded common passwords: %v", err))
	}
	commonPasswords.Store(&set)
}

func readCommonPasswords(r io.Reader, set passwordSet) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(strings.ToLower(scanner.Text())); line != "" && !strings.HasPrefix(line, "#") {
			set[line] = struct{}{}
		}
	}
	return scanner.Err()
}

// LoadCommonPasswords adds the entries of a one-per-line password list, plain
// or gzip-compressed (such as Django's common-passwords.txt.gz), to the
// embedded list. It returns the size of the combined list.
func LoadCommonPasswords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open common passwords: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if magic, _ := r.(*bufio.Reader).Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return 0, fmt.Errorf("open gzip common passwords: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	current := commonPasswords.Load()
	set := make(passwordSet, len(*current))
	for entry := range *current {
		set[entry] = struct{}{}
	}
	if err := readCommonPasswords(r, set); err != nil {
		return 0, fmt.Errorf("read common passwords: %w", err)
	}

	commonPasswords.Store(&set)
	return len(set), nil
}

func isCommonPassword(password string) bool {
	_, ok := (*commonPasswords.Load())[strings.ToLower(strings.TrimSpace(password))]
	return ok
}

// ValidatePassword checks password against the password policy and reports
// every failed rule in a single validation error. attributes are the user's
// own values (username, email) the password must not resemble.
func ValidatePassword(password string, attributes ...string) error {
	var problems []string

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, fmt.Sprintf("This password is too short. It must contain at least %d characters.", MinPasswordLength))
	}
	if attr, ok := similarAttribute(password, attributes); ok {
		problems = append(problems, fmt.Sprintf("The password is too similar to the %s.", attr))
	}
	if isCommonPassword(password) {
		problems = append(problems, "This password is too common.")
	}
	if isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}

	if len(problems) > 0 {
		return apperror.Validation("%s", strings.Join(problems, " "))
	}
	return nil
}

// similarAttribute returns a description of the first attribute, or word part
// of one, whose normalized edit-distance similarity to password reaches
// maxSimilarity.
func similarAttribute(password string, attributes []string) (string, bool) {
	lowered := strings.ToLower(password)
	for i, attr := range attributes {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if attr == "" {
			continue
		}
		candidates := append([]string{attr}, nonWord.Split(attr, -1)...)
		for _, candidate := range candidates {
			if candidate == "" {
				continue
			}
			if similarity(lowered, candidate) >= maxSimilarity {
				return attributeName(i), true
			}
		}
	}
	return "", false
}

func attributeName(i int) string {
	switch i {
	case 0:
		return "username"
	case 1:
		return "email address"
	default:
		return "account details"
	}
}

// similarity is 2*LCS/(len(a)+len(b)). With substitution priced as a delete
// plus an insert, the edit distance equals total length minus twice the LCS.
func similarity(a, b string) float64 {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 1
	}
	distance := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return 1 - float64(distance)/float64(total)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// PasswordHasher stores passwords as salted bcrypt hashes.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperror.Validation("This password is too long.")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Matches reports whether password hashes to hash. Any malformed hash is a mismatch.
func (h *PasswordHasher) Matches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
