package repo

import (
	"time"

	"storespark/internal/domain"
	"storespark/pkg/utils"
)

// Seed 写入演示数据（账号/店铺/评分）。已有用户则跳过，重复执行安全。
// 演示账号：admin@example.com / AdminPass1!，user@example.com / UserPass1!，
// owner@store.com / OwnerPass1!，diana@example.com / DianaPass1!
func Seed(rs Set) error {
	if n, err := rs.Users.Count(); err != nil {
		return err
	} else if n > 0 {
		return nil
	}

	store1 := "store1"
	owner1 := "storeowner1"

	users := []domain.User{
		{ID: "admin1", Name: "Alice Administrator LongNameExample", Email: "admin@example.com",
			Address: "123 Admin St, System City", Role: domain.RoleAdmin,
			PasswordHash: utils.HashPassword("AdminPass1!")},
		{ID: "user1", Name: "Bob User Example VeryLongName", Email: "user@example.com",
			Address: "456 User Ave, Normal Town", Role: domain.RoleUser,
			PasswordHash: utils.HashPassword("UserPass1!")},
		{ID: owner1, Name: "Charlie Owner StoreNameExample", Email: "owner@store.com",
			Address: "789 Store Rd, Shopsville", Role: domain.RoleOwner, StoreID: &store1,
			PasswordHash: utils.HashPassword("OwnerPass1!")},
		{ID: "user2", Name: "Diana Another User ExampleName", Email: "diana@example.com",
			Address: "111 Test Blvd, UserVille", Role: domain.RoleUser,
			PasswordHash: utils.HashPassword("DianaPass1!")},
	}
	for i := range users {
		if err := rs.Users.Create(&users[i]); err != nil {
			return err
		}
	}

	stores := []domain.Store{
		{ID: store1, Name: "The Grand Market", Email: "contact@grandmarket.com", Address: "100 Main Street, Shopsville", OwnerID: &owner1},
		{ID: "store2", Name: "Corner Goods & Groceries", Email: "info@cornergoods.com", Address: "202 Side Avenue, Normal Town"},
		{ID: "store3", Name: "Tech Universe Hub", Email: "support@techuniverse.com", Address: "303 Tech Park, System City"},
		{ID: "store4", Name: "Bloom & Blossom Florist", Email: "flowers@bloom.com", Address: "404 Rose Petal Lane, Garden City"},
		{ID: "store5", Name: "Gadget Central Emporium", Email: "contact@gadgetcentral.com", Address: "505 Circuit Board Rd, Techville"},
		{ID: "store6", Name: "The Cozy Corner Bookstore", Email: "reads@cozycorner.com", Address: "606 Page Turner Ave, Library Town"},
		{ID: "store7", Name: "Fresh Start Bakery & Cafe", Email: "info@freshstartbakery.com", Address: "707 Muffin Top St, Sweetville"},
		{ID: "store8", Name: "Adventure Gear Outfitters", Email: "gear@adventure.com", Address: "808 Mountain Pass, Summit Peak"},
		{ID: "store9", Name: "Serene Spa & Wellness", Email: "relax@serenespa.com", Address: "909 Tranquil Path, Calm Waters"},
		{ID: "store10", Name: "Pawsitively Pets Supplies", Email: "pets@pawsitively.com", Address: "1010 Bark Ave, Animal Kingdom"},
		{ID: "store11", Name: "Melody Makers Music Shop", Email: "music@melodymakers.com", Address: "1111 Harmony St, Tune Town"},
		{ID: "store12", Name: "Artisan Alley Crafts", Email: "crafts@artisanalley.com", Address: "1212 Creative Way, Handcraft City"},
		{ID: "store13", Name: "Gourmet Galaxy Fine Foods", Email: "food@gourmetgalaxy.com", Address: "1313 Flavor Trail, Epicuria"},
		{ID: "store14", Name: "Vintage Vogue Boutique", Email: "style@vintagevogue.com", Address: "1414 Retro Rd, Fashion Forward"},
		{ID: "store15", Name: "Green Thumb Garden Center", Email: "plants@greenthumb.com", Address: "1515 Sprout St, Flora Valley"},
		{ID: "store16", Name: "CyclePro Bike Shop", Email: "bikes@cyclepro.com", Address: "1616 Pedal Path, Velocity Ville"},
		{ID: "store17", Name: "Home Harmony Decor", Email: "decor@homeharmony.com", Address: "1717 Cozy Ct, Interior City"},
		{ID: "store18", Name: "The Fitness Hub Gym", Email: "fitness@thehub.com", Address: "1818 Wellness Way, Strongtown"},
		{ID: "store19", Name: "Global Goods Grocer", Email: "groceries@globalgoods.com", Address: "1919 Market Pl, World Food Center"},
		{ID: "store20", Name: "QuickFix Auto Repair", Email: "repair@quickfixauto.com", Address: "2020 Wrench Rd, Motorville"},
		{ID: "store21", Name: "The Board Room Cafe (Games)", Email: "games@boardroom.com", Address: "2121 Dice Roll Dr, Playville"},
	}
	base := time.Now()
	for i := range stores {
		// 保持列表顺序稳定
		stores[i].CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		if err := rs.Stores.Create(&stores[i]); err != nil {
			return err
		}
	}

	seedRatings := []struct {
		store, user string
		value       int
	}{
		{"store1", "user1", 5},
		{"store1", "admin1", 4},
		{"store2", "user1", 3},
		{"store4", "user1", 4},
		{"store5", "user2", 5},
		{"store1", "user2", 2},
	}
	for _, sr := range seedRatings {
		if _, err := rs.Ratings.Upsert(sr.store, sr.user, sr.value); err != nil {
			return err
		}
	}
	return nil
}
