// internal/model/interpret.go
package model

// InterpretedItem is a candidate word/translation pair extracted by the
// server from free text or uploaded files. Never persisted client-side;
// promoted to a Flashcard only through an explicit create action.
type InterpretedItem struct {
	SourceWord                string `json:"source_word"`
	TranslatedWord            string `json:"translated_word"`
	SourceLanguage            string `json:"source_language,omitempty"`
	NativeLanguage            string `json:"native_language,omitempty"`
	ExampleSentence           string `json:"example_sentence,omitempty"`
	ExampleSentenceTranslated string `json:"example_sentence_translated,omitempty"`
}

// InterpretResponse is the wire shape of both interpret endpoints.
type InterpretResponse struct {
	Items []InterpretedItem `json:"items"`
}

// FileUpload carries one file for the multipart interpret endpoint.
type FileUpload struct {
	Name string
	Data []byte
}
