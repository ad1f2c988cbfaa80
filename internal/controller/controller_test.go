package controller

import (
	"bytes"
	"courseforge_backend/internal/config"
	"courseforge_backend/internal/repository"
	"courseforge_backend/internal/service"
	"courseforge_backend/pkg/database"
	"courseforge_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	m.Run()
}

// newTestRouter 用内存库和未配置的模型客户端搭一套完整路由
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:ctl_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Upload.Dir = dir
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = dir

	courseRepo := repository.NewCourseRepository(db, nil)
	progressRepo := repository.NewProgressRepository(db)
	tutorRepo := repository.NewTutorRepository(db)

	storage := service.NewStorageService(cfg)
	processor := service.NewFileProcessor(cfg, nil)
	generator := service.NewCourseGenerator(nil, courseRepo)
	progressSvc := service.NewProgressService(progressRepo, courseRepo)
	tutorSvc := service.NewTutorService(nil, tutorRepo)
	exporter := service.NewExportService()

	upload := NewUploadController(storage, processor, generator, courseRepo)
	course := NewCourseController(courseRepo)
	export := NewExportController(courseRepo, exporter)
	progress := NewProgressController(progressSvc, courseRepo)
	tutor := NewTutorController(tutorSvc, courseRepo)

	router := gin.New()
	api := router.Group("/api/v1")
	{
		api.POST("/upload", upload.Upload)
		api.GET("/upload/status/:course_id", upload.Status)
		api.GET("/courses", course.List)
		api.GET("/courses/:course_id", course.Get)
		api.GET("/courses/:course_id/toc", course.TableOfContents)
		api.GET("/courses/:course_id/flashcards", course.Flashcards)
		api.DELETE("/courses/:course_id", course.Delete)
		api.GET("/courses/:course_id/export/summary", export.Summary)
		api.GET("/courses/:course_id/export/flashcards", export.Flashcards)
		api.GET("/courses/:course_id/export/notes", export.Notes)
		api.GET("/progress/:course_id", progress.Get)
		api.POST("/progress/:course_id/lesson", progress.UpdateLesson)
		api.POST("/progress/:course_id/quiz", progress.UpdateQuizScore)
		api.POST("/tutor/:course_id/chat", tutor.Chat)
		api.GET("/tutor/:course_id/conversation", tutor.Conversation)
	}
	return router
}

func doForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// uploadText 走文本上传生成一门课程，返回课程ID
func uploadText(t *testing.T, router *gin.Engine, text string) uint {
	t.Helper()
	w := doForm(router, "/api/v1/upload", url.Values{"text": {text}})
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("upload success = %v", body["success"])
	}
	id, ok := body["course_id"].(float64)
	if !ok || id == 0 {
		t.Fatalf("course_id = %v", body["course_id"])
	}
	return uint(id)
}

func TestUpload_NoInput(t *testing.T) {
	router := newTestRouter(t)

	w := doForm(router, "/api/v1/upload", url.Values{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["detail"] != "No input provided" {
		t.Fatalf("detail = %v", body["detail"])
	}
}

func TestUpload_TextGeneratesCourse(t *testing.T) {
	router := newTestRouter(t)

	id := uploadText(t, router, "Go concurrency patterns and channel usage in practice.")

	w := doGet(router, fmt.Sprintf("/api/v1/courses/%d", id))
	if w.Code != http.StatusOK {
		t.Fatalf("get course status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["title"] != "Course from text" {
		t.Fatalf("title = %v", body["title"])
	}
	modules, ok := body["modules"].([]interface{})
	if !ok || len(modules) == 0 {
		t.Fatalf("modules = %v", body["modules"])
	}
}

func TestUpload_Status(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "short material")

	w := doGet(router, fmt.Sprintf("/api/v1/upload/status/%d", id))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "completed" {
		t.Fatalf("generation status = %v", body["status"])
	}
}

func TestCourse_GetMissing(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/courses/999",
		"/api/v1/courses/not-a-number",
	} {
		w := doGet(router, path)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s status = %d", path, w.Code)
		}
		body := decodeBody(t, w)
		if body["detail"] != "Course not found" {
			t.Fatalf("%s detail = %v", path, body["detail"])
		}
	}
}

func TestCourse_List(t *testing.T) {
	router := newTestRouter(t)
	uploadText(t, router, "material one")
	uploadText(t, router, "material two")

	w := doGet(router, "/api/v1/courses")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	courses, ok := body["courses"].([]interface{})
	if !ok || len(courses) != 2 {
		t.Fatalf("courses = %v", body["courses"])
	}
	first := courses[0].(map[string]interface{})
	if _, ok := first["module_count"]; !ok {
		t.Fatalf("missing module_count in %v", first)
	}
}

func TestCourse_Delete(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "material to delete")

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", id), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["message"] != "Course deleted" {
		t.Fatalf("delete body = %v", body)
	}

	if got := doGet(router, fmt.Sprintf("/api/v1/courses/%d", id)); got.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", got.Code)
	}
}

func TestProgress_GetLazyRecord(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "progress material")

	w := doGet(router, fmt.Sprintf("/api/v1/progress/%d", id))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["user_id"] != "default" {
		t.Fatalf("user_id = %v", body["user_id"])
	}
	if body["overall_progress"] != float64(0) {
		t.Fatalf("overall_progress = %v", body["overall_progress"])
	}
	if lessons, ok := body["completed_lessons"].([]interface{}); !ok || len(lessons) != 0 {
		t.Fatalf("completed_lessons = %v", body["completed_lessons"])
	}
}

func TestProgress_GetMissingCourse(t *testing.T) {
	router := newTestRouter(t)

	w := doGet(router, "/api/v1/progress/42")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestProgress_UpdateLesson(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "lesson progress material")

	// 取一个真实课时ID
	course := decodeBody(t, doGet(router, fmt.Sprintf("/api/v1/courses/%d", id)))
	modules := course["modules"].([]interface{})
	lessons := modules[0].(map[string]interface{})["lessons"].([]interface{})
	lessonID := lessons[0].(map[string]interface{})["id"].(float64)

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/api/v1/progress/%d/lesson", id), map[string]interface{}{
		"lesson_id": lessonID,
		"completed": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	done := body["completed_lessons"].([]interface{})
	if len(done) != 1 {
		t.Fatalf("completed_lessons = %v", done)
	}
	if body["overall_progress"].(float64) <= 0 {
		t.Fatalf("overall_progress = %v", body["overall_progress"])
	}
}

func TestProgress_QuizScoreUpsert(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "quiz material")

	path := fmt.Sprintf("/api/v1/progress/%d/quiz", id)
	if w := doJSON(router, http.MethodPost, path, map[string]interface{}{"quiz_id": 7, "score": 40.0}); w.Code != http.StatusOK {
		t.Fatalf("first submit status = %d", w.Code)
	}
	w := doJSON(router, http.MethodPost, path, map[string]interface{}{"quiz_id": 7, "score": 90.0})
	if w.Code != http.StatusOK {
		t.Fatalf("second submit status = %d", w.Code)
	}
	body := decodeBody(t, w)
	scores := body["quiz_scores"].(map[string]interface{})
	if scores["7"] != float64(90) {
		t.Fatalf("quiz_scores = %v", scores)
	}
}

func TestTutor_ChatAndConversation(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "tutor material")

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/api/v1/tutor/%d/chat", id), map[string]interface{}{
		"message": "What is this course about?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("chat status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	reply, _ := body["response"].(string)
	if !strings.HasPrefix(reply, "I'm here to help with 'Course from text'") {
		t.Fatalf("response = %q", reply)
	}

	conv := decodeBody(t, doGet(router, fmt.Sprintf("/api/v1/tutor/%d/conversation", id)))
	messages, ok := conv["messages"].([]interface{})
	if !ok || len(messages) != 2 {
		t.Fatalf("messages = %v", conv["messages"])
	}
}

func TestTutor_ConversationEmpty(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "quiet material")

	conv := decodeBody(t, doGet(router, fmt.Sprintf("/api/v1/tutor/%d/conversation", id)))
	messages, ok := conv["messages"].([]interface{})
	if !ok || len(messages) != 0 {
		t.Fatalf("messages = %v", conv["messages"])
	}
}

func TestTutor_ChatMissingMessage(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "tutor material")

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/api/v1/tutor/%d/chat", id), map[string]interface{}{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestExport_Endpoints(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "export material")

	summary := doGet(router, fmt.Sprintf("/api/v1/courses/%d/export/summary", id))
	if summary.Code != http.StatusOK {
		t.Fatalf("summary status = %d", summary.Code)
	}
	if !strings.HasPrefix(summary.Body.String(), "# Course from text") {
		t.Fatalf("summary body = %q", summary.Body.String())
	}
	if cd := summary.Header().Get("Content-Disposition"); !strings.Contains(cd, "summary.txt") {
		t.Fatalf("summary disposition = %q", cd)
	}

	csvResp := doGet(router, fmt.Sprintf("/api/v1/courses/%d/export/flashcards?format=csv", id))
	if csvResp.Code != http.StatusOK {
		t.Fatalf("csv status = %d", csvResp.Code)
	}
	if ct := csvResp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("csv content type = %q", ct)
	}
	if !strings.HasPrefix(csvResp.Body.String(), "Front,Back") {
		t.Fatalf("csv body = %q", csvResp.Body.String())
	}

	jsonResp := doGet(router, fmt.Sprintf("/api/v1/courses/%d/export/flashcards", id))
	var cards []map[string]string
	if err := json.Unmarshal(jsonResp.Body.Bytes(), &cards); err != nil {
		t.Fatalf("flashcards json: %v", err)
	}
	if len(cards) == 0 {
		t.Fatalf("no flashcards exported")
	}

	notes := doGet(router, fmt.Sprintf("/api/v1/courses/%d/export/notes", id))
	if notes.Code != http.StatusOK {
		t.Fatalf("notes status = %d", notes.Code)
	}
	if ct := notes.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Fatalf("notes content type = %q", ct)
	}
}

func TestFlashcards_Endpoint(t *testing.T) {
	router := newTestRouter(t)
	id := uploadText(t, router, "flashcard material")

	w := doGet(router, fmt.Sprintf("/api/v1/courses/%d/flashcards", id))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	cards, ok := body["flashcards"].([]interface{})
	if !ok || len(cards) != 10 {
		t.Fatalf("flashcards = %v", body["flashcards"])
	}
}
