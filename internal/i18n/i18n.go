// internal/i18n/i18n.go
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var instance *I18n
var once sync.Once

// builtinEN is the fallback catalog compiled into the binary; locale
// files on disk override it.
var builtinEN = map[string]string{
	KeySuccess: "Success",
	KeyError:   "Error",

	KeyAuthRequired:      "Authentication required",
	KeyAuthInvalidToken:  "Invalid authentication token",
	KeyAuthTokenExpired:  "Authentication token expired",
	KeyOwnerAccessDenied: "Only the gateway owner may perform this action",
	KeyAuthorNotAllowed:  "Caller is not an authorized author",
	KeySystemPaused:      "The gateway is paused",

	KeyValidationInvalid: "Invalid %s",

	KeyRegistrationSuccess:  "Work registered successfully",
	KeyDerivativeSuccess:    "Derivative registered successfully",
	KeyCollectionCreated:    "Collection created successfully",
	KeyCollectionNotCreated: "Asset collection has not been created yet",
	KeyCollectionExists:     "Asset collection already exists",
	KeyAssetNotFound:        "Asset not found",

	KeyTipSuccess:         "Tip paid successfully",
	KeyRoyaltyPaidSuccess: "Royalty share paid successfully",
	KeyClaimSuccess:       "Royalties claimed successfully",
	KeyInvalidAmount:      "Amount must be greater than zero",
	KeyFeeTooHigh:         "Platform fee exceeds your ceiling",
	KeyNoRoyaltyVault:     "Target asset has no royalty vault",

	KeyAuthorizationUpdated: "Authorization updated",
	KeyPauseUpdated:         "Pause state updated",
	KeyPlatformFeeUpdated:   "Platform fee updated",
	KeyOwnerTransferred:     "Ownership transferred",
}

func Initialize() error {
	var err error
	once.Do(func() {
		instance = &I18n{
			translations: map[string]map[string]string{"en": builtinEN},
			defaultLang:  "en",
		}
		err = instance.LoadTranslations("./internal/i18n/locales")
	})
	return err
}

// LoadTranslations merges locale files over the builtin catalog. A
// missing locales directory is not an error.
func (i *I18n) LoadTranslations(localesPath string) error {
	entries, err := os.ReadDir(localesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read locales directory %s: %w", localesPath, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		filePath := filepath.Join(localesPath, entry.Name())

		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", filePath, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", filePath, err)
		}

		i.mu.Lock()
		if existing, ok := i.translations[lang]; ok {
			for key, value := range translations {
				existing[key] = value
			}
		} else {
			i.translations[lang] = translations
		}
		i.mu.Unlock()
	}

	return nil
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	// Try to get translation for requested language
	if translations, exists := i.translations[lang]; exists {
		if text, exists := translations[key]; exists {
			if len(args) > 0 {
				return fmt.Sprintf(text, args...)
			}
			return text
		}
	}

	// Fallback to default language
	if lang != i.defaultLang {
		if translations, exists := i.translations[i.defaultLang]; exists {
			if text, exists := translations[key]; exists {
				if len(args) > 0 {
					return fmt.Sprintf(text, args...)
				}
				return text
			}
		}
	}

	// Return key if no translation found
	return key
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	if instance != nil {
		return instance.T(lang, key, args...)
	}
	if text, ok := builtinEN[key]; ok {
		if len(args) > 0 {
			return fmt.Sprintf(text, args...)
		}
		return text
	}
	return key
}

func GetSupportedLanguages() []string {
	if instance == nil {
		return []string{"en"}
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()

	langs := make([]string, 0, len(instance.translations))
	for lang := range instance.translations {
		langs = append(langs, lang)
	}
	return langs
}
