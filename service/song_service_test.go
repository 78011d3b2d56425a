package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gongcheng0311-dotcom/daily-music/models"
)

func TestValidateDate(t *testing.T) {
	valid := []string{"2024-01-01", "2024-12-31", "2000-02-29"}
	for _, d := range valid {
		if err := ValidateDate(d); err != nil {
			t.Errorf("ValidateDate(%q) = %v, want nil", d, err)
		}
	}

	invalid := []string{"", "2024-1-1", "2024/01/01", "01-01-2024", "2024-13-01", "2024-02-30", "2024-01-01T00:00:00"}
	for _, d := range invalid {
		if err := ValidateDate(d); err == nil {
			t.Errorf("ValidateDate(%q) = nil, want error", d)
		}
	}
}

func TestSelectSong(t *testing.T) {
	songs := []models.Song{
		{ID: 3, Date: "2024-03-03", Title: "c"},
		{ID: 2, Date: "2024-03-02", Title: "b"},
		{ID: 1, Date: "2024-03-01", Title: "a"},
	}

	// 当天有歌：精确命中
	got := SelectSong("2024-03-02", songs)
	if got == nil || got.ID != 2 {
		t.Fatalf("expected song 2, got %+v", got)
	}

	// 当天没歌：回退到最新一首（切片已按日期倒序）
	got = SelectSong("2024-03-05", songs)
	if got == nil || got.ID != 3 {
		t.Fatalf("expected fallback to song 3, got %+v", got)
	}

	// 空库：nil，不是错误
	if got := SelectSong("2024-03-05", nil); got != nil {
		t.Fatalf("expected nil for empty slice, got %+v", got)
	}
}

func TestSongService_GetSongOfDay_ExactDate(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	ss := NewSongService(&Service{DB: gormDB, TablePrefix: "music_"})

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "date", "title", "artist", "created_at", "updated_at"}).
		AddRow(uint64(1), "2024-03-02", "晴天", "周杰伦", now, now)

	mock.ExpectQuery("SELECT \\* FROM `music_song` WHERE date = \\?").
		WithArgs("2024-03-02", 1).
		WillReturnRows(rows)

	dto, err := ss.GetSongOfDay("2024-03-02")
	if err != nil {
		t.Fatalf("GetSongOfDay: %v", err)
	}
	if dto == nil || dto.Title != "晴天" {
		t.Fatalf("expected 晴天, got %+v", dto)
	}
	if !dto.IsToday {
		t.Fatal("expected IsToday for exact date hit")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSongService_GetSongOfDay_FallbackLatest(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	ss := NewSongService(&Service{DB: gormDB, TablePrefix: "music_"})

	now := time.Now()

	// 当天查不到
	mock.ExpectQuery("SELECT \\* FROM `music_song` WHERE date = \\?").
		WithArgs("2024-03-05", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "title"}))

	// 回退：按 date 倒序取第一首
	mock.ExpectQuery("SELECT \\* FROM `music_song` .*ORDER BY date DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "title", "artist", "created_at", "updated_at"}).
			AddRow(uint64(3), "2024-03-03", "稻香", "周杰伦", now, now))

	dto, err := ss.GetSongOfDay("2024-03-05")
	if err != nil {
		t.Fatalf("GetSongOfDay: %v", err)
	}
	if dto == nil || dto.Date != "2024-03-03" {
		t.Fatalf("expected fallback 2024-03-03, got %+v", dto)
	}
	if dto.IsToday {
		t.Fatal("fallback song should not be marked IsToday")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSongService_GetSongOfDay_EmptyLibrary(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	ss := NewSongService(&Service{DB: gormDB, TablePrefix: "music_"})

	mock.ExpectQuery("SELECT \\* FROM `music_song` WHERE date = \\?").
		WithArgs("2024-03-05", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT \\* FROM `music_song` .*ORDER BY date DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// 空库不是错误：首页据 nil 渲染空态
	dto, err := ss.GetSongOfDay("2024-03-05")
	if err != nil {
		t.Fatalf("expected nil error for empty library, got %v", err)
	}
	if dto != nil {
		t.Fatalf("expected nil dto for empty library, got %+v", dto)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSongService_GetSongByDate_NotFound(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	ss := NewSongService(&Service{DB: gormDB, TablePrefix: "music_"})

	mock.ExpectQuery("SELECT \\* FROM `music_song` WHERE date = \\?").
		WithArgs("2024-03-05", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	dto, err := ss.GetSongByDate("2024-03-05")
	if err != nil {
		t.Fatalf("expected nil error for missing date, got %v", err)
	}
	if dto != nil {
		t.Fatalf("expected nil dto, got %+v", dto)
	}

	// 非法日期在查库之前就被拒绝
	if _, err := ss.GetSongByDate("2024-3-5"); err == nil {
		t.Fatal("expected validation error for malformed date")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSongService_ListHistory_ExcludesCurrent(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	ss := NewSongService(&Service{DB: gormDB, TablePrefix: "music_"})

	rows := sqlmock.NewRows([]string{"date", "title", "artist", "cover_url"}).
		AddRow("2024-03-03", "c", "x", "").
		AddRow("2024-03-02", "b", "y", "").
		AddRow("2024-03-01", "a", "z", "")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `date`,`title`,`artist`,`cover_url` FROM `music_song`")).
		WillReturnRows(rows)

	list, err := ss.ListHistory("2024-03-02")
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries after exclusion, got %d", len(list))
	}
	if list[0].Date != "2024-03-03" || list[1].Date != "2024-03-01" {
		t.Fatalf("unexpected order: %+v", list)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSongService_CreateSong_DuplicateDate(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	ss := NewSongService(&Service{DB: gormDB, TablePrefix: "music_"})

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `music_song` WHERE date = \\?").
		WithArgs("2024-03-02").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := ss.CreateSong(CreateSongReq{Date: "2024-03-02", Title: "t", Artist: "a"})
	if err == nil {
		t.Fatal("expected error for duplicate date")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
