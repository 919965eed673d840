package models

// CEFRLevel is the Common European Framework proficiency tier used to
// calibrate content and question complexity.
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
)

// IsBeginner reports whether the level is A1 or A2. Beginner levels
// forbid hypothetical/analytical question phrasing.
func (l CEFRLevel) IsBeginner() bool { return l == LevelA1 || l == LevelA2 }

// IsAdvanced reports whether the level is B2 or C1, which require at
// least one analytical question in discussion sections.
func (l CEFRLevel) IsAdvanced() bool { return l == LevelB2 || l == LevelC1 }

// SectionType identifies one structural unit of a generated lesson.
type SectionType string

const (
	SectionWarmUp        SectionType = "warmup"
	SectionVocabulary    SectionType = "vocabulary"
	SectionDialogue      SectionType = "dialogue"
	SectionDiscussion    SectionType = "discussion"
	SectionGrammar       SectionType = "grammar"
	SectionPronunciation SectionType = "pronunciation"
)

// DialogueLine is one turn of a dialogue section.
type DialogueLine struct {
	Speaker string `json:"speaker" yaml:"speaker"`
	Text    string `json:"text" yaml:"text"`
}

type DialogueSection struct {
	Lines []DialogueLine `json:"lines" yaml:"lines"`
}

type DiscussionSection struct {
	Questions []string `json:"questions" yaml:"questions"`
}

// GrammarExercise is one practice item in a grammar section.
type GrammarExercise struct {
	Prompt string `json:"prompt" yaml:"prompt"`
	Answer string `json:"answer" yaml:"answer"`
}

type GrammarSection struct {
	Rule      string            `json:"rule" yaml:"rule"`
	Form      string            `json:"form" yaml:"form"`
	Usage     string            `json:"usage" yaml:"usage"`
	Examples  []string          `json:"examples" yaml:"examples"`
	Exercises []GrammarExercise `json:"exercises" yaml:"exercises"`
}

// PronunciationWord pairs a target word with its IPA transcription and
// practice material.
type PronunciationWord struct {
	Word             string `json:"word" yaml:"word"`
	IPA              string `json:"ipa" yaml:"ipa"`
	Tips             string `json:"tips" yaml:"tips"`
	PracticeSentence string `json:"practice_sentence" yaml:"practice_sentence"`
}

// TongueTwister is a practice phrase tagged with the sounds it targets.
type TongueTwister struct {
	Text         string   `json:"text" yaml:"text"`
	TargetSounds []string `json:"target_sounds" yaml:"target_sounds"`
}

type PronunciationSection struct {
	Words          []PronunciationWord `json:"words" yaml:"words"`
	TongueTwisters []TongueTwister     `json:"tongue_twisters" yaml:"tongue_twisters"`
}

type WarmUpSection struct {
	Questions []string `json:"questions" yaml:"questions"`
}

// VocabularyItem is one taught term.
type VocabularyItem struct {
	Term       string `json:"term" yaml:"term"`
	Definition string `json:"definition" yaml:"definition"`
	Example    string `json:"example" yaml:"example"`
}

type VocabularySection struct {
	Items []VocabularyItem `json:"items" yaml:"items"`
}

// Lesson is a finished, validated lesson handed to persistence/export.
type Lesson struct {
	Title         string                `json:"title" yaml:"title"`
	Topic         string                `json:"topic" yaml:"topic"`
	Level         CEFRLevel             `json:"level" yaml:"level"`
	Language      string                `json:"language" yaml:"language"`
	SourceURL     string                `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	WarmUp        *WarmUpSection        `json:"warmup,omitempty" yaml:"warmup,omitempty"`
	Vocabulary    *VocabularySection    `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`
	Dialogue      *DialogueSection      `json:"dialogue,omitempty" yaml:"dialogue,omitempty"`
	Discussion    *DiscussionSection    `json:"discussion,omitempty" yaml:"discussion,omitempty"`
	Grammar       *GrammarSection       `json:"grammar,omitempty" yaml:"grammar,omitempty"`
	Pronunciation *PronunciationSection `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
}
