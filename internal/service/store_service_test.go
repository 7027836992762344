package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"storespark/internal/domain"
	"storespark/internal/repo"
)

func newStoreFixture(t *testing.T) (*StoreService, repo.Set) {
	t.Helper()
	repos := repo.NewMemorySet()
	if err := repo.Seed(repos); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewStoreService(repos.Stores, repos.Ratings, repos.Users, nil, zap.NewNop())
	return svc, repos
}

func findStore(t *testing.T, list []domain.StoreDetails, id string) domain.StoreDetails {
	t.Helper()
	for _, d := range list {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("store %s not in result", id)
	return domain.StoreDetails{}
}

func TestOverallRatingZeroWhenUnrated(t *testing.T) {
	svc, _ := newStoreFixture(t)

	list, err := svc.ListWithDetails(context.Background(), "user1", StoreQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// store3 没有任何评分：必须是 0，不是 NaN
	d := findStore(t, list, "store3")
	if d.OverallRating != 0 {
		t.Fatalf("unrated store rating = %v, want 0", d.OverallRating)
	}
	if math.IsNaN(d.OverallRating) {
		t.Fatalf("unrated store rating is NaN")
	}
}

func TestOverallRatingIsArithmeticMean(t *testing.T) {
	svc, _ := newStoreFixture(t)

	list, err := svc.ListWithDetails(context.Background(), "", StoreQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// store1 的种子评分是 5、4、2
	d := findStore(t, list, "store1")
	want := (5.0 + 4.0 + 2.0) / 3.0
	if math.Abs(d.OverallRating-want) > 1e-9 {
		t.Fatalf("store1 rating = %v, want %v", d.OverallRating, want)
	}
}

func TestUserSubmittedRatingDistinguishesNeverRated(t *testing.T) {
	svc, _ := newStoreFixture(t)

	list, err := svc.ListWithDetails(context.Background(), "user1", StoreQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	rated := findStore(t, list, "store1")
	if rated.UserRating == nil || *rated.UserRating != 5 {
		t.Fatalf("user1's rating on store1 = %v, want 5", rated.UserRating)
	}
	never := findStore(t, list, "store3")
	if never.UserRating != nil {
		t.Fatalf("never-rated store must carry nil, got %v", *never.UserRating)
	}
}

func TestSubmitRatingUpsertKeepsOneRecord(t *testing.T) {
	svc, repos := newStoreFixture(t)
	ctx := context.Background()

	first, err := svc.SubmitRating(ctx, "store1", "user1", 5)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	total, _ := repos.Ratings.Count()

	second, err := svc.SubmitRating(ctx, "store1", "user1", 2)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if after, _ := repos.Ratings.Count(); after != total {
		t.Fatalf("resubmission created a new record: %d -> %d", total, after)
	}
	if second.Value != 2 {
		t.Fatalf("resubmission value = %d, want 2", second.Value)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatalf("timestamp went backwards: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}

	rows, _ := repos.Ratings.ListByStore("store1")
	n := 0
	for _, r := range rows {
		if r.UserID == "user1" {
			n++
			if r.Value != 2 {
				t.Fatalf("stored value = %d, want 2", r.Value)
			}
		}
	}
	if n != 1 {
		t.Fatalf("found %d ratings for (store1,user1), want exactly 1", n)
	}
}

func TestSubmitRatingRejectsOutOfRange(t *testing.T) {
	svc, _ := newStoreFixture(t)
	ctx := context.Background()

	for _, v := range []int{0, 6, -1} {
		_, err := svc.SubmitRating(ctx, "store1", "user1", v)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("value %d: expected validation error, got %v", v, err)
		}
	}
	if _, err := svc.SubmitRating(ctx, "store1", "user1", 3); err != nil {
		t.Fatalf("value 3 rejected: %v", err)
	}
}

func TestSubmitRatingUnknownStore(t *testing.T) {
	svc, _ := newStoreFixture(t)
	if _, err := svc.SubmitRating(context.Background(), "no-such-store", "user1", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSearchIsCaseInsensitiveSubstring(t *testing.T) {
	svc, _ := newStoreFixture(t)

	list, err := svc.ListWithDetails(context.Background(), "", StoreQuery{Q: "BAKERY"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "store7" {
		t.Fatalf("search 'BAKERY' returned %d rows", len(list))
	}

	// 地址列也参与匹配
	list, err = svc.ListWithDetails(context.Background(), "", StoreQuery{Q: "shopsville"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "store1" {
		t.Fatalf("address search returned %d rows", len(list))
	}
}

func TestListSortByRatingDesc(t *testing.T) {
	svc, _ := newStoreFixture(t)

	list, err := svc.ListWithDetails(context.Background(), "", StoreQuery{Sort: "overallRating", Dir: "desc"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// 种子数据里 store5 均分 5，最高
	if list[0].ID != "store5" {
		t.Fatalf("top store = %s, want store5", list[0].ID)
	}
	for i := 1; i < len(list); i++ {
		if list[i].OverallRating > list[i-1].OverallRating {
			t.Fatalf("not sorted descending at %d", i)
		}
	}
}

func TestListSortByNameAscDefault(t *testing.T) {
	svc, _ := newStoreFixture(t)

	// dir 缺省按升序（新选排序键默认升序）
	list, err := svc.ListWithDetails(context.Background(), "", StoreQuery{Sort: "name"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if cmpStrings(list[i-1].Name, list[i].Name) > 0 {
			t.Fatalf("not sorted ascending at %d: %q > %q", i, list[i-1].Name, list[i].Name)
		}
	}
}

func TestOwnerDashboard(t *testing.T) {
	svc, _ := newStoreFixture(t)

	dash, err := svc.Dashboard(context.Background(), "storeowner1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.Store.ID != "store1" {
		t.Fatalf("wrong store %s", dash.Store.ID)
	}
	want := (5.0 + 4.0 + 2.0) / 3.0
	if math.Abs(dash.AverageRating-want) > 1e-9 {
		t.Fatalf("average = %v, want %v", dash.AverageRating, want)
	}
	if len(dash.Ratings) != 3 {
		t.Fatalf("expected 3 rating rows, got %d", len(dash.Ratings))
	}
	for _, row := range dash.Ratings {
		if row.UserName == "" {
			t.Fatalf("rating row missing user name: %+v", row)
		}
	}
}

func TestOwnerDashboardWithoutStore(t *testing.T) {
	svc, _ := newStoreFixture(t)
	// user1 不是店主
	if _, err := svc.Dashboard(context.Background(), "user1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddStore(t *testing.T) {
	svc, repos := newStoreFixture(t)
	ctx := context.Background()

	before, _ := repos.Stores.Count()
	st, err := svc.AddStore(ctx, AddStoreInput{
		Name:    "Brand New Demo Store With Name",
		Email:   "new@store.example.com",
		Address: "42 Fresh Street, New Town",
	})
	if err != nil {
		t.Fatalf("add store: %v", err)
	}
	if st.ID == "" {
		t.Fatalf("store id not assigned")
	}
	if after, _ := repos.Stores.Count(); after != before+1 {
		t.Fatalf("store count %d -> %d", before, after)
	}

	// 校验失败不落库
	if _, err := svc.AddStore(ctx, AddStoreInput{Name: "short", Email: "bad", Address: ""}); err == nil {
		t.Fatalf("invalid store accepted")
	}
}
