package service

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gongcheng0311-dotcom/daily-music/models"
)

func TestAggregate(t *testing.T) {
	cases := []struct {
		name    string
		scores  []uint8
		count   int
		average float64
	}{
		{"empty", nil, 0, 0},                    // 没有评分：0 条、平均 0，不是 NaN
		{"single", []uint8{7}, 1, 7},
		{"integer_mean", []uint8{10, 8, 6}, 3, 8},
		{"half", []uint8{9, 8}, 2, 8.5},
		{"rounded_down", []uint8{1, 1, 2}, 3, 1.33}, // 1.3333... -> 1.33
		{"rounded_up", []uint8{2, 2, 1}, 3, 1.67},   // 1.6666... -> 1.67
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ratings := make([]models.Rating, len(tc.scores))
			for i, sc := range tc.scores {
				ratings[i] = models.Rating{Score: sc}
			}
			got := Aggregate(ratings)
			if got.Count != tc.count || got.Average != tc.average {
				t.Fatalf("Aggregate(%v) = %+v, want {%d %v}", tc.scores, got, tc.count, tc.average)
			}
		})
	}
}

func TestAggregate_RepeatRatingsCountSeparately(t *testing.T) {
	// 同一用户评 3 次就是 3 条，不去重
	ratings := []models.Rating{
		{UserID: 1, Score: 10},
		{UserID: 1, Score: 8},
		{UserID: 1, Score: 6},
	}
	got := Aggregate(ratings)
	if got.Count != 3 || got.Average != 8 {
		t.Fatalf("Aggregate = %+v, want {3 8}", got)
	}
}

func TestRatingsByUser(t *testing.T) {
	ratings := []models.Rating{
		{ID: 4, UserID: 2, Score: 9},
		{ID: 3, UserID: 1, Score: 8},
		{ID: 2, UserID: 2, Score: 7},
		{ID: 1, UserID: 1, Score: 6},
	}

	mine := RatingsByUser(ratings, 1)
	if len(mine) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(mine))
	}
	// 输入顺序保留（调用方给的是时间倒序）
	if mine[0].ID != 3 || mine[1].ID != 1 {
		t.Fatalf("order not preserved: %+v", mine)
	}

	if got := RatingsByUser(ratings, 99); len(got) != 0 {
		t.Fatalf("expected empty slice for unknown user, got %+v", got)
	}
}

func TestToRatingDTOs_LeftJoin(t *testing.T) {
	name := "小明"
	idx := map[uint64]*models.Profile{
		1: {ID: 1, DisplayName: &name},
	}
	ratings := []models.Rating{
		{ID: 10, SongID: 5, UserID: 1, Score: 9},
		{ID: 11, SongID: 5, UserID: 2, Score: 3}, // 资料缺失
	}

	dtos := toRatingDTOs(ratings, idx)
	if len(dtos) != len(ratings) {
		t.Fatalf("length must be preserved, got %d", len(dtos))
	}
	if dtos[0].Profile == nil || dtos[0].Profile.DisplayName != "小明" {
		t.Fatalf("expected joined profile, got %+v", dtos[0].Profile)
	}
	// 查不到资料置 nil，不丢行
	if dtos[1].Profile != nil {
		t.Fatalf("expected nil profile for missing user, got %+v", dtos[1].Profile)
	}
	if dtos[1].Score != 3 {
		t.Fatalf("rating fields must survive the join: %+v", dtos[1])
	}
}

func TestRatingService_AddRating_ScoreValidation(t *testing.T) {
	gormDB, _, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	rs := NewRatingService(&Service{DB: gormDB, TablePrefix: "music_"})

	// 非法分数在任何存储调用之前被拒绝（没有设置 mock 期望，有 SQL 就会失败），
	// 且归类为校验错误（handler 映射到参数错误码）
	for _, score := range []int{0, -1, 11, 100} {
		_, err := rs.AddRating(1, 1, score)
		if err == nil {
			t.Errorf("AddRating(score=%d) should be rejected", score)
			continue
		}
		if !IsValidationError(err) {
			t.Errorf("AddRating(score=%d) error should be a validation error, got %v", score, err)
		}
	}
}

func TestRatingService_AddRating_StoreFailurePassthrough(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	rs := NewRatingService(&Service{DB: gormDB, TablePrefix: "music_"})

	mock.ExpectExec("INSERT INTO `music_rating`").
		WillReturnError(errors.New("Error 1205: Lock wait timeout exceeded"))

	_, err := rs.AddRating(5, 1, 9)
	if err == nil {
		t.Fatal("expected store error")
	}
	// 存储失败原样透出，不归类为校验/权限错误，也不重试
	if IsValidationError(err) || IsOwnershipError(err) {
		t.Fatalf("store error misclassified: %v", err)
	}
	if err.Error() != "Error 1205: Lock wait timeout exceeded" {
		t.Fatalf("store error not passed through verbatim: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRatingService_AddRating_AlwaysInsert(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	rs := NewRatingService(&Service{DB: gormDB, TablePrefix: "music_"})

	// 同一 user+song 连评两次：两次都是 INSERT，没有 UPDATE
	for i := 0; i < 2; i++ {
		mock.ExpectExec("INSERT INTO `music_rating`").
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		mock.ExpectQuery("SELECT \\* FROM `music_profile` WHERE id = \\?").
			WithArgs(uint64(1), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "is_admin"}).
				AddRow(uint64(1), "小明", false))
	}

	first, err := rs.AddRating(5, 1, 9)
	if err != nil {
		t.Fatalf("first AddRating: %v", err)
	}
	second, err := rs.AddRating(5, 1, 3)
	if err != nil {
		t.Fatalf("second AddRating: %v", err)
	}
	if first.Score != 9 || second.Score != 3 {
		t.Fatalf("unexpected scores: %d, %d", first.Score, second.Score)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRatingService_DeleteRating_Ownership(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	rs := NewRatingService(&Service{DB: gormDB, TablePrefix: "music_"})

	// 谓词永远带 user_id：别人的记录命中 0 行
	mock.ExpectExec("DELETE FROM `music_rating` WHERE id = \\? AND user_id = \\?").
		WithArgs(uint64(10), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := rs.DeleteRating(5, 10, 2)
	if err == nil {
		t.Fatal("expected error when deleting someone else's rating")
	}
	if !IsOwnershipError(err) {
		t.Fatalf("0-row delete should be an ownership error, got %v", err)
	}

	// 本人删除：命中 1 行
	mock.ExpectExec("DELETE FROM `music_rating` WHERE id = \\? AND user_id = \\?").
		WithArgs(uint64(10), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := rs.DeleteRating(5, 10, 1); err != nil {
		t.Fatalf("DeleteRating: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRatingService_ListRatings(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	rs := NewRatingService(&Service{DB: gormDB, TablePrefix: "music_"})

	mock.ExpectQuery("SELECT \\* FROM `music_rating` WHERE song_id = \\?").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "song_id", "user_id", "score"}).
			AddRow(uint64(2), uint64(5), uint64(1), uint8(9)).
			AddRow(uint64(1), uint64(5), uint64(2), uint8(8)))

	// 资料一次 IN 查询
	mock.ExpectQuery("SELECT \\* FROM `music_profile` WHERE id IN \\(\\?,\\?\\)").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "is_admin"}).
			AddRow(uint64(1), "小明", false))

	dtos, stats, err := rs.ListRatings(5)
	if err != nil {
		t.Fatalf("ListRatings: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 dtos, got %d", len(dtos))
	}
	if stats.Count != 2 || stats.Average != 8.5 {
		t.Fatalf("stats = %+v, want {2 8.5}", stats)
	}
	if dtos[0].Profile == nil || dtos[1].Profile != nil {
		t.Fatalf("join mismatch: %+v", dtos)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
