package service

import (
	"courseforge_backend/internal/model"
	"courseforge_backend/internal/repository"
	"courseforge_backend/internal/util"
	"courseforge_backend/pkg/logger"
	"courseforge_backend/pkg/monitoring"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// 生成参数。上游模型对超长输入的收益递减，超过上限的内容直接截断并打标记。
const (
	maxPromptContentLength = 20000
	truncationMarker       = "... [content truncated]"

	fallbackChunkWords      = 500
	fallbackMaxModules      = 5
	fallbackLessonsPerChunk = 3
	fallbackFlashcards      = 10
)

// 短文本里出现这些短语时按"宽泛主题"处理：让模型自行设计完整大纲，
// 而不是对给定内容做转写
var broadTopicTriggers = []string{
	"full course",
	"complete course",
	"from basics",
	"comprehensive",
}

// CourseGenerator 把抽取后的纯文本变成结构化课程文档并落库。
// Generate 对外永不失败：AI 路径上的任何错误（未配置、网络、JSON 解析、
// 结构校验）都回落到确定性生成，这是生成接口的唯一恢复策略。
type CourseGenerator struct {
	client     ModelClient
	courseRepo *repository.CourseRepository
}

func NewCourseGenerator(client ModelClient, courseRepo *repository.CourseRepository) *CourseGenerator {
	return &CourseGenerator{
		client:     client,
		courseRepo: courseRepo,
	}
}

// Generate 从抽取文本生成课程文档
func (g *CourseGenerator) Generate(content string, sourceType string) *model.CourseDocument {
	if g.client == nil || !g.client.Configured() {
		monitoring.GenerationCounter.WithLabelValues("fallback", sourceType).Inc()
		return g.simpleCourse(content, sourceType)
	}

	doc, err := g.generateWithAI(content, sourceType)
	if err != nil {
		logger.Log.Warn("AI course generation failed, using fallback",
			zap.String("source_type", sourceType),
			zap.Error(err))
		monitoring.GenerationCounter.WithLabelValues("fallback", sourceType).Inc()
		return g.simpleCourse(content, sourceType)
	}

	monitoring.GenerationCounter.WithLabelValues("ai", sourceType).Inc()
	return doc
}

func (g *CourseGenerator) generateWithAI(content string, sourceType string) (*model.CourseDocument, error) {
	prompt := g.generationPrompt(content, sourceType)

	raw, err := g.client.Chat(prompt, "You are an expert course creator. Generate structured educational content.")
	if err != nil {
		return nil, err
	}

	var doc model.CourseDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("model returned non-JSON response: %w", err)
	}

	// 入库前做结构校验，避免无类型数据在保存途中才暴露问题
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// IsBroadTopic 判断是否为宽泛主题请求：输入很短且带有触发短语
func IsBroadTopic(content string) bool {
	if len(content) >= 500 {
		return false
	}
	lower := strings.ToLower(content)
	for _, trigger := range broadTopicTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

func (g *CourseGenerator) generationPrompt(content string, sourceType string) string {
	broadTopic := IsBroadTopic(content)

	if truncated := util.Truncate(content, maxPromptContentLength); len(truncated) < len(content) {
		content = truncated + truncationMarker
	}

	intro := "Convert the following content into a comprehensive, well-structured educational course."
	if broadTopic {
		intro = "The user has requested a comprehensive course on a broad topic. Analyze the topic and create a complete, detailed syllabus covering all essential aspects from fundamentals to advanced concepts."
	}

	return fmt.Sprintf(`You are an expert course creator and curriculum designer. %s

IMPORTANT: Generate meaningful, descriptive topic names - NEVER use generic names like "Topic 1", "Concept 1", "Introduction", "Basics".

Source type: %s
Content/Request:
%s

Generate a JSON structure with the following format:
{
  "title": "Course Title",
  "description": "Comprehensive course description (2-3 sentences)",
  "table_of_contents": [
    {"module": 1, "title": "Module Title", "lessons": ["Topic 1", "Topic 2"]}
  ],
  "modules": [
    {
      "title": "Module Title (e.g., 'Python Fundamentals', 'Control Flow', 'Data Structures')",
      "description": "Module description (1-2 sentences)",
      "order": 1,
      "lessons": [
        {
          "title": "Specific Topic Name (e.g., 'Variables and Data Types', 'If-Else Statements') - NOT generic names",
          "order": 1,
          "beginner_content": "# Overview\n[Clear definition - 2-3 sentences]\n\n# Why This Matters\n[1-2 paragraphs explaining importance]\n\n# Step-by-Step Explanation\n[400-600 words: Break down concept into clear steps, use simple language, include examples, common mistakes, recap]",
          "intermediate_content": "# Deep Dive\n[Technical overview - 2-3 paragraphs]\n\n# How It Works Internally\n[Explain internal mechanisms - 2-3 paragraphs]\n\n# Advanced Concepts\n[500-800 words: Cover intermediate concepts, patterns, best practices, real-world use cases, performance considerations]",
          "expert_content": "# Architecture & Design\n[Deep architectural discussion - 2-3 paragraphs]\n\n# Internal Implementation Details\n[700-1000+ words: Explain implementation, memory management, optimization, advanced patterns, edge cases, production scenarios, industry standards]",
          "examples": ["Practical example 1", "Code example 2", "Real-world scenario 3"],
          "analogies": ["Creative analogy 1", "Relatable analogy 2"],
          "summary": "Concise summary (2-3 sentences)",
          "quizzes": [
            {
              "questionText": "Multiple choice question",
              "type": "mcq",
              "options": ["Option A", "Option B (correct)", "Option C", "Option D"],
              "correct_answer": 1,
              "explanation": "Detailed explanation (2-3 sentences)",
              "difficulty": "Beginner"
            },
            {
              "questionText": "True or False: [Statement]",
              "type": "true_false",
              "options": ["True", "False"],
              "correct_answer": 0,
              "explanation": "Explanation",
              "difficulty": "Beginner"
            },
            {
              "questionText": "Complete the code: [Code snippet with blank]",
              "type": "code",
              "options": ["Code option A (correct)", "Code option B", "Code option C", "Code option D"],
              "correct_answer": 0,
              "explanation": "Code explanation",
              "difficulty": "Intermediate"
            },
            {
              "questionText": "Find the error in this code: [Code with error]",
              "type": "code",
              "options": ["Error description A (correct)", "Error description B", "Error description C", "No error"],
              "correct_answer": 0,
              "explanation": "Error explanation",
              "difficulty": "Intermediate"
            }
          ],
          "coding_tasks": ["Task 1", "Task 2"]
        }
      ]
    }
  ],
  "flashcards": [
    {"front": "Question", "back": "Answer"}
  ]
}

CRITICAL REQUIREMENTS:
1. Generate 4-10 modules (more for broad topics)
2. Each module should have 8-25 topics with MEANINGFUL, DESCRIPTIVE NAMES
3. Topic names MUST be specific: "Variables and Data Types" - NOT "Topic 1", "Concept 1"
4. Beginner content: 400-600 words with Overview, Why This Matters, Step-by-Step, Examples, Common Mistakes, Recap
5. Intermediate content: 500-800 words with Deep Dive, How It Works, Advanced Concepts, Best Practices, Real-World Use Cases
6. Expert content: 700-1000+ words with Architecture, Implementation Details, Advanced Patterns, Edge Cases, Performance, Production Scenarios
7. Generate 5-10 quiz questions per topic with variety: MCQ (40-50%%), True/False (20-30%%), Code Completion (20-30%%), Find Error (10-20%%)
8. Each quiz question must have: questionText, type, options, correct_answer (index), explanation (2-3 sentences), difficulty (Beginner/Intermediate/Expert)
9. For broad topics, create complete curriculum from fundamentals to advanced
10. All content must be detailed, educational, and teaching-focused - teach, don't just summarize!

Generate comprehensive course content. Return ONLY valid JSON, no markdown formatting.
`, intro, sourceType, content)
}

// simpleCourse 无模型可用时的确定性生成：把原文按 500 词分块，
// 前 5 块作为模块，每模块最多再吃 3 块作为课时。标题是占位式的
// "Module N"/"Lesson N"，这是刻意保留的质量下限，保证生成接口在
// 零外部依赖时也能产出可存储的文档。
func (g *CourseGenerator) simpleCourse(content string, sourceType string) *model.CourseDocument {
	words := strings.Fields(content)

	var chunks []string
	for i := 0; i < len(words); i += fallbackChunkWords {
		end := i + fallbackChunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}

	var modules []model.ModuleDraft
	lessonNum := 1

	moduleCount := len(chunks)
	if moduleCount > fallbackMaxModules {
		moduleCount = fallbackMaxModules
	}

	for i := 0; i < moduleCount; i++ {
		chunk := chunks[i]

		lessonCount := len(chunks) - i*fallbackLessonsPerChunk
		if lessonCount > fallbackLessonsPerChunk {
			lessonCount = fallbackLessonsPerChunk
		}

		var lessons []model.LessonDraft
		for j := 0; j < lessonCount; j++ {
			lessonIdx := i*fallbackLessonsPerChunk + j
			if lessonIdx >= len(chunks) {
				break
			}
			lessons = append(lessons, model.LessonDraft{
				Title:               fmt.Sprintf("Lesson %d", lessonNum),
				Order:               j + 1,
				BeginnerContent:     util.Truncate(chunk, 500) + "...",
				IntermediateContent: util.Truncate(chunk, 1000) + "...",
				ExpertContent:       chunk,
				Examples:            []string{},
				Analogies:           []string{},
				Summary:             util.Truncate(chunk, 200) + "...",
				CodingTasks:         []string{},
				Quizzes: []model.QuizDraft{
					{
						Question:      "What is the main topic of this lesson?",
						Options:       []string{"Option A", "Option B", "Option C", "Option D"},
						CorrectAnswer: 0,
						Explanation:   "Based on the content",
					},
				},
			})
			lessonNum++
		}

		if len(lessons) > 0 {
			modules = append(modules, model.ModuleDraft{
				Title:       fmt.Sprintf("Module %d", i+1),
				Description: fmt.Sprintf("Module %d description", i+1),
				Order:       i + 1,
				Lessons:     lessons,
			})
		}
	}

	// 目录从刚生成的模块机械推导
	toc := make([]model.TOCEntry, 0, len(modules))
	for _, m := range modules {
		titles := make([]string, 0, len(m.Lessons))
		for _, l := range m.Lessons {
			titles = append(titles, l.Title)
		}
		toc = append(toc, model.TOCEntry{
			ModuleNumber: m.Order,
			Title:        m.Title,
			Lessons:      titles,
		})
	}

	flashcards := make([]model.FlashcardDraft, 0, fallbackFlashcards)
	for i := 0; i < fallbackFlashcards; i++ {
		flashcards = append(flashcards, model.FlashcardDraft{
			Front: fmt.Sprintf("Question %d", i+1),
			Back:  fmt.Sprintf("Answer %d", i+1),
		})
	}

	return &model.CourseDocument{
		Title:           fmt.Sprintf("Course from %s", sourceType),
		Description:     fmt.Sprintf("Generated course from %s content", sourceType),
		TableOfContents: toc,
		Modules:         modules,
		Flashcards:      flashcards,
	}
}

// SaveCourse 把课程文档物化为关系实体图
func (g *CourseGenerator) SaveCourse(doc *model.CourseDocument, sourceType, sourceContent, sourceFilePath string) (*model.Course, error) {
	return g.courseRepo.CreateFromDocument(doc, sourceType, sourceContent, sourceFilePath)
}
