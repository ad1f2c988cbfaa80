package model

import (
	"time"
)

// TOCEntry 目录条目。目录在生成时独立写入，之后不与 modules 列表做一致性校验，
// 二者通常一致但不强制。
type TOCEntry struct {
	ModuleNumber int      `json:"module"`
	Title        string   `json:"title"`
	Lessons      []string `json:"lessons"`
}

// Course 课程主体，删除课程时级联删除全部下属实体
type Course struct {
	ID              uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string             `gorm:"size:255;not null" json:"title"`
	Description     string             `gorm:"type:text" json:"description"`
	SourceType      string             `gorm:"size:20" json:"source_type"` // text, pdf, image, audio, video, link
	SourceContent   string             `gorm:"type:text" json:"-"`         // 文本输入的原文
	SourceFilePath  string             `gorm:"size:512" json:"-"`          // 文件上传的落盘路径
	TableOfContents []TOCEntry         `gorm:"type:json;serializer:json" json:"table_of_contents"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"-"`
	Modules         []Module           `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules"`
	Flashcards      []Flashcard        `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"flashcards"`
	Progress        []CourseProgress   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Conversations   []TutorConversation `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// NormalizeCollections 把为 nil 的集合字段归一成空切片，接口输出 [] 而不是 null
func (c *Course) NormalizeCollections() {
	if c.TableOfContents == nil {
		c.TableOfContents = []TOCEntry{}
	}
	if c.Modules == nil {
		c.Modules = []Module{}
	}
	if c.Flashcards == nil {
		c.Flashcards = []Flashcard{}
	}
	for i := range c.Modules {
		m := &c.Modules[i]
		if m.Lessons == nil {
			m.Lessons = []Lesson{}
		}
		for j := range m.Lessons {
			l := &m.Lessons[j]
			if l.Examples == nil {
				l.Examples = []string{}
			}
			if l.Analogies == nil {
				l.Analogies = []string{}
			}
			if l.Diagrams == nil {
				l.Diagrams = []string{}
			}
			if l.CodingTasks == nil {
				l.CodingTasks = []string{}
			}
			if l.Quizzes == nil {
				l.Quizzes = []Quiz{}
			}
		}
	}
}

type Module struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID    uint      `gorm:"index;not null" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Order       int       `gorm:"column:display_order;not null" json:"order"`
	CreatedAt   time.Time `json:"-"`
	Lessons     []Lesson  `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"lessons"`
}

func (Module) TableName() string {
	return "modules"
}

type Lesson struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ModuleID uint   `gorm:"index;not null" json:"module_id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Order    int    `gorm:"column:display_order;not null" json:"order"`

	// 三档讲解深度
	BeginnerContent     string `gorm:"type:text" json:"beginner_content"`
	IntermediateContent string `gorm:"type:text" json:"intermediate_content"`
	ExpertContent       string `gorm:"type:text" json:"expert_content"`

	Examples    []string `gorm:"type:json;serializer:json" json:"examples"`
	Analogies   []string `gorm:"type:json;serializer:json" json:"analogies"`
	Diagrams    []string `gorm:"type:json;serializer:json" json:"diagrams"`
	Summary     string   `gorm:"type:text" json:"summary"`
	CodingTasks []string `gorm:"type:json;serializer:json" json:"coding_tasks"`

	CreatedAt time.Time `json:"-"`
	Quizzes   []Quiz    `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"quizzes"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Quiz 单选题。CorrectAnswer 是 Options 的下标，写入时不做越界校验，
// 越界值由读取方容错。
type Quiz struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	LessonID      uint      `gorm:"index;not null" json:"lesson_id"`
	Question      string    `gorm:"type:text;not null" json:"question"`
	Options       []string  `gorm:"type:json;serializer:json;not null" json:"options"`
	CorrectAnswer int       `json:"correct_answer"`
	Explanation   string    `gorm:"type:text" json:"explanation"`
	CreatedAt     time.Time `json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type Flashcard struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID  uint      `gorm:"index;not null" json:"course_id"`
	Front     string    `gorm:"type:text;not null" json:"front"`
	Back      string    `gorm:"type:text;not null" json:"back"`
	CreatedAt time.Time `json:"-"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}
