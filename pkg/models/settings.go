package models

// Settings represents the application configuration
type Settings struct {
	UI       UISettings       `yaml:"ui"`
	Editor   EditorSettings   `yaml:"editor"`
	Workflow WorkflowSettings `yaml:"workflow"`
	Logging  LoggingSettings  `yaml:"logging"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview  bool `yaml:"show_preview"`
	PromptWidth  int  `yaml:"prompt_width"`
	WatchChanges bool `yaml:"watch_changes"`
}

// EditorSettings controls editor preferences
type EditorSettings struct {
	Command      string `yaml:"command"`
	TabSize      int    `yaml:"tab_size"`
	ShowLineNums bool   `yaml:"show_line_numbers"`
}

// WorkflowSettings controls publishing behaviour
type WorkflowSettings struct {
	RequireApproval bool   `yaml:"require_approval"`
	DefaultTemplate string `yaml:"default_template"`
	ScheduleLayout  string `yaml:"schedule_layout"`
}

// LoggingSettings controls the debug log written next to the content
type LoggingSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			ShowPreview:  true,
			PromptWidth:  60,
			WatchChanges: true,
		},
		Editor: EditorSettings{
			Command:      "",
			TabSize:      2,
			ShowLineNums: true,
		},
		Workflow: WorkflowSettings{
			RequireApproval: false,
			DefaultTemplate: "default",
			ScheduleLayout:  "2006-01-02 15:04",
		},
		Logging: LoggingSettings{
			Level: "info",
			File:  "cmsdesk.log",
		},
	}
}
