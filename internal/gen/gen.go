package gen

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"demo/minimart/internal/model"
)

func SeedOnce() { gofakeit.Seed(time.Now().UnixNano()) }

func FakeUser() model.User {
	return model.User{
		ID:       int64(gofakeit.Number(1, 1_000_000)),
		Username: gofakeit.Username(),
	}
}

// SequentialNames returns "User 1" .. "User n".
func SequentialNames(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("User %d", i))
	}
	return out
}

func FakeNames(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, gofakeit.Username())
	}
	return out
}

// OrderListed mirrors one entry of the subgraph's orderListeds list.
type OrderListed struct {
	ID              string `json:"id"`
	OrderID         string `json:"orderId"`
	Seller          string `json:"seller"`
	NftContract     string `json:"nftContract"`
	TokenID         string `json:"tokenId"`
	Price           string `json:"price"`
	BlockNumber     string `json:"blockNumber"`
	TransactionHash string `json:"transactionHash"`
}

func FakeOrderListed() OrderListed {
	return OrderListed{
		ID:              hexString(72),
		OrderID:         gofakeit.DigitN(6),
		Seller:          hexString(40),
		NftContract:     hexString(40),
		TokenID:         fmt.Sprint(gofakeit.Number(1, 10_000)),
		Price:           fmt.Sprint(gofakeit.Number(1_000, 1_000_000_000)),
		BlockNumber:     fmt.Sprint(gofakeit.Number(32_908_523, 40_000_000)),
		TransactionHash: hexString(64),
	}
}

// FakeOrdersData returns a GraphQL data object holding n orderListeds.
func FakeOrdersData(n int) json.RawMessage {
	orders := make([]OrderListed, 0, n)
	for i := 0; i < n; i++ {
		orders = append(orders, FakeOrderListed())
	}
	b, _ := json.Marshal(map[string][]OrderListed{"orderListeds": orders})
	return b
}

const hexDigits = "0123456789abcdef"

// hexString returns a 0x-prefixed string of n random hex digits.
func hexString(n int) string {
	var b strings.Builder
	b.WriteString("0x")
	for i := 0; i < n; i++ {
		b.WriteByte(hexDigits[gofakeit.Number(0, len(hexDigits)-1)])
	}
	return b.String()
}
