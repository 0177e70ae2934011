package vo

// RPCMethod identifies a server-side operation. The tokens are obfuscated
// strings reverse-engineered from the web frontend's traffic and can change
// without notice upstream.
type RPCMethod string

const (
	// Notebook operations
	RPCListNotebooks  RPCMethod = "wXbhsf"
	RPCCreateNotebook RPCMethod = "CCqFvf"
	RPCGetNotebook    RPCMethod = "rLM1Ne"
	RPCRenameNotebook RPCMethod = "s0tc2d"
	RPCDeleteNotebook RPCMethod = "WWINqb"
	RPCGetDescription RPCMethod = "VfAZjd"

	// Source operations
	RPCAddSource     RPCMethod = "izAoDd"
	RPCAddSourceFile RPCMethod = "o4cbdc"
	RPCDeleteSource  RPCMethod = "tGMBJ"
	RPCGetSource     RPCMethod = "hizoJc"
	RPCRenameSource  RPCMethod = "BPnFVd"

	// Studio/Artifact operations
	RPCCreateArtifact RPCMethod = "R7cb6c"
	RPCPollStudio     RPCMethod = "gArtLc"
	RPCListArtifacts  RPCMethod = "gArtLc"
	RPCDeleteArtifact RPCMethod = "j7mI7e"

	// Note operations
	RPCListNotes  RPCMethod = "cFji9"
	RPCCreateNote RPCMethod = "CYK0Xb"
	RPCUpdateNote RPCMethod = "cYAfTb"
	RPCDeleteNote RPCMethod = "AH0mwd"

	// Report suggestions
	RPCReportSuggestions RPCMethod = "uK8f3e"
)

// StudioContentType represents artifact type codes
type StudioContentType int

const (
	ContentTypeAudio       StudioContentType = 1
	ContentTypeReport      StudioContentType = 2
	ContentTypeVideo       StudioContentType = 3
	ContentTypeQuiz        StudioContentType = 4 // also flashcards, see variant codes
	ContentTypeMindMap     StudioContentType = 5
	ContentTypeInfographic StudioContentType = 7
	ContentTypeSlideDeck   StudioContentType = 8
	ContentTypeDataTable   StudioContentType = 9
)

// Variant codes disambiguate artifacts sharing content type 4.
const (
	VariantFlashcards = 1
	VariantQuiz       = 2
)

// Artifact/task status codes as returned at position 4 of an artifact tree.
const (
	StatusInProgress = 1
	StatusPending    = 2
	StatusCompleted  = 3
	StatusFailed     = 4
)

// StatusString maps a status code to its name. Unknown codes read as pending:
// a task the server has not materialized yet reports no status at all.
func StatusString(code int) string {
	switch code {
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// AudioFormat represents audio overview formats
type AudioFormat int

const (
	AudioFormatDeepDive AudioFormat = 1
	AudioFormatBrief    AudioFormat = 2
	AudioFormatCritique AudioFormat = 3
	AudioFormatDebate   AudioFormat = 4
)

// AudioLength represents audio length options
type AudioLength int

const (
	AudioLengthShort   AudioLength = 1
	AudioLengthDefault AudioLength = 2
	AudioLengthLong    AudioLength = 3
)

// VideoFormat represents video generation formats
type VideoFormat int

const (
	VideoFormatBriefing VideoFormat = 1
	VideoFormatTutorial VideoFormat = 2
)

// VideoStyle represents video style options
type VideoStyle int

const (
	VideoStyleClassroom    VideoStyle = 1
	VideoStyleWhiteboard   VideoStyle = 2
	VideoStyleConversation VideoStyle = 3
)

// QuizQuantity represents how many questions a quiz should contain
type QuizQuantity int

const (
	QuizQuantityFewer    QuizQuantity = 1
	QuizQuantityStandard QuizQuantity = 2
	// QuizQuantityMore shares STANDARD's wire value; the frontend sends 2 for
	// both options. A quirk of the external API, kept rather than merged.
	QuizQuantityMore QuizQuantity = 2
)

// QuizDifficulty represents quiz difficulty options
type QuizDifficulty int

const (
	QuizDifficultyEasy   QuizDifficulty = 1
	QuizDifficultyMedium QuizDifficulty = 2
	QuizDifficultyHard   QuizDifficulty = 3
)

// ReportFormat represents report style presets
type ReportFormat int

const (
	ReportFormatBriefing   ReportFormat = 1
	ReportFormatStudyGuide ReportFormat = 2
	ReportFormatFAQ        ReportFormat = 3
	ReportFormatTimeline   ReportFormat = 4
)
