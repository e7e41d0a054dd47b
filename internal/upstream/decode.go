package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList accepts both {"data": [...]} and a bare JSON array. The upstream
// uses either shape depending on the endpoint.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var env struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// decodeData unwraps a {"data": {...}} envelope.
func decodeData[T any](body []byte) (T, error) {
	var env struct {
		Data T `json:"data"`
	}
	err := json.Unmarshal(body, &env)
	return env.Data, err
}

// decodePage decodes {results, metadata, data}. Missing metadata is filled
// in so callers can always page.
func decodePage[T any](body []byte) (Page[T], error) {
	var page Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return Page[T]{}, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	if page.Results == 0 {
		page.Results = len(page.Data)
	}
	if page.Metadata.CurrentPage == 0 {
		page.Metadata.CurrentPage = 1
	}
	if page.Metadata.NumberOfPages == 0 {
		page.Metadata.NumberOfPages = 1
	}
	return page, nil
}

type cartEnvelope struct {
	NumOfCartItems int    `json:"numOfCartItems"`
	CartID         string `json:"cartId"`
	Data           struct {
		ID             string     `json:"_id"`
		CartOwner      string     `json:"cartOwner"`
		Products       []CartItem `json:"products"`
		TotalCartPrice float64    `json:"totalCartPrice"`
	} `json:"data"`
}

func decodeCart(body []byte) (*Cart, error) {
	var env cartEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	cartID := env.CartID
	if cartID == "" {
		cartID = env.Data.ID
	}
	items := env.Data.Products
	if items == nil {
		items = []CartItem{}
	}
	count := env.NumOfCartItems
	if count < 0 {
		count = 0
	}
	return &Cart{
		CartID:     cartID,
		NumItems:   count,
		OwnerID:    env.Data.CartOwner,
		Items:      items,
		TotalPrice: env.Data.TotalCartPrice,
	}, nil
}

// errorBody is the upstream's error envelope.
type errorBody struct {
	Message   string `json:"message"`
	StatusMsg string `json:"statusMsg"`
	Errors    *struct {
		Msg   string `json:"msg"`
		Param string `json:"param"`
	} `json:"errors"`
}

func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Errors != nil && eb.Errors.Msg != "" {
		return eb.Errors.Msg
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.StatusMsg
}
