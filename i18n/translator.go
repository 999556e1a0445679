package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "target").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "empty_schema":
			return "スキーマが空です"
		case "malformed_field":
			return "フィールド定義が不正です"
		case "duplicate_field":
			return "フィールド名が重複しています"
		case "unknown_field":
			return "未知のフィールドです"
		case "conversion":
			return "型に変換できません"
		case "assertion_failed":
			return "アサーションに失敗しました"
		case "default_error":
			return "デフォルト式の評価に失敗しました"
		}
	default: // "en"
		switch code {
		case "empty_schema":
			return "empty schema"
		case "malformed_field":
			return "malformed field entry"
		case "duplicate_field":
			return "duplicate field name"
		case "unknown_field":
			return "unknown field"
		case "conversion":
			return "cannot convert to declared type"
		case "assertion_failed":
			return "assertion failed"
		case "default_error":
			return "default expression failed"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
