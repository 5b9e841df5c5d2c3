package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 订单模块集成测试
// 结算是本项目的核心流程：购物车每个条目生成一个订单，
// 全部成功后清空购物车，任何一步失败则整体回滚。

// TestCheckoutFlow 测试完整结算流程（端到端）
func TestCheckoutFlow(t *testing.T) {
	RequireServer(t)

	// Step 1: 卖家上架两本书
	_, sellerToken := RegisterTestUser(t, "flow_seller", "seller")
	bookA := PublishTestBook(t, sellerToken, "《图书A》", 500, 100) // 5元
	bookB := PublishTestBook(t, sellerToken, "《图书B》", 300, 100) // 3元

	// Step 2: 买家加购 A×2 + B×1
	_, buyerToken := RegisterTestUser(t, "flow_buyer", "buyer")
	AddCartItem(t, buyerToken, bookA, 2)
	AddCartItem(t, buyerToken, bookB, 1)

	// Step 3: 购物车总额可算出 2×500 + 1×300 = 1300
	cartResp := GetJSON(t, BaseURL+"/cart", buyerToken)
	require.Equal(t, http.StatusOK, cartResp.Status)

	var cartData struct {
		Items []ItemData `json:"items"`
	}
	cartResp.Decode(t, &cartData)
	require.Len(t, cartData.Items, 2)

	var total int64
	for _, item := range cartData.Items {
		total += item.Subtotal
	}
	assert.Equal(t, int64(1300), total, "购物车总额应为1300分")
	t.Logf("✓ 购物车总额: %d分", total)

	// Step 4: 结算，每个条目一个订单
	checkoutResp := PostJSON(t, BaseURL+"/orders", nil, buyerToken)
	require.Equal(t, http.StatusCreated, checkoutResp.Status, "结算应该成功: %s", string(checkoutResp.Body))

	var checkoutData struct {
		Orders []OrderData `json:"orders"`
	}
	checkoutResp.Decode(t, &checkoutData)
	require.Len(t, checkoutData.Orders, 2, "两个条目应生成两个订单")

	totals := map[uint]int64{}
	for _, o := range checkoutData.Orders {
		totals[o.BookID] = o.TotalPrice
		assert.Equal(t, "pending", o.Status, "新订单应为pending")
	}
	assert.Equal(t, int64(1000), totals[bookA], "图书A订单金额应为2×500")
	assert.Equal(t, int64(300), totals[bookB], "图书B订单金额应为1×300")
	t.Logf("✓ 结算成功，生成订单金额: %d / %d", totals[bookA], totals[bookB])

	// Step 5: 购物车已清空
	afterResp := GetJSON(t, BaseURL+"/cart", buyerToken)
	require.Equal(t, http.StatusOK, afterResp.Status)

	var afterData struct {
		Items []ItemData `json:"items"`
	}
	afterResp.Decode(t, &afterData)
	assert.Empty(t, afterData.Items, "结算后购物车应为空")

	// Step 6: 空购物车再次结算被拒绝
	emptyResp := PostJSON(t, BaseURL+"/orders", nil, buyerToken)
	assert.Equal(t, http.StatusBadRequest, emptyResp.Status, "空购物车结算应返回400")
	e := emptyResp.DecodeError(t)
	assert.Equal(t, 40001, e.Code, "错误码应为购物车为空")

	// Step 7: 买家与卖家都能看到订单
	buyerOrders := GetJSON(t, BaseURL+"/orders", buyerToken)
	require.Equal(t, http.StatusOK, buyerOrders.Status)

	sellerOrders := GetJSON(t, BaseURL+"/orders/seller", sellerToken)
	require.Equal(t, http.StatusOK, sellerOrders.Status)

	var sellerData struct {
		Orders []OrderData `json:"orders"`
	}
	sellerOrders.Decode(t, &sellerData)
	assert.GreaterOrEqual(t, len(sellerData.Orders), 2, "卖家应看到两个待发货订单")

	t.Log("✓ 完整结算流程测试通过")
}

// TestCheckoutDanglingBook 测试购物车引用已删除图书
func TestCheckoutDanglingBook(t *testing.T) {
	RequireServer(t)

	_, sellerToken := RegisterTestUser(t, "dang_seller", "seller")
	aliveBook := PublishTestBook(t, sellerToken, "《正常图书》", 500, 100)
	doomedBook := PublishTestBook(t, sellerToken, "《将被删除的图书》", 300, 100)

	_, buyerToken := RegisterTestUser(t, "dang_buyer", "buyer")
	AddCartItem(t, buyerToken, aliveBook, 1)
	AddCartItem(t, buyerToken, doomedBook, 1)

	// 卖家删除其中一本（删除不校验购物车引用）
	delResp := DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, doomedBook), sellerToken)
	require.Equal(t, http.StatusOK, delResp.Status)

	// 结算整体失败
	checkoutResp := PostJSON(t, BaseURL+"/orders", nil, buyerToken)
	assert.Equal(t, http.StatusBadRequest, checkoutResp.Status, "含悬挂条目的结算应失败")
	e := checkoutResp.DecodeError(t)
	assert.Equal(t, 40002, e.Code, "错误码应为悬挂引用")

	// 购物车保持原样（事务回滚），两个条目都还在
	cartResp := GetJSON(t, BaseURL+"/cart", buyerToken)
	require.Equal(t, http.StatusOK, cartResp.Status)

	var cartData struct {
		Items []ItemData `json:"items"`
	}
	cartResp.Decode(t, &cartData)
	assert.Len(t, cartData.Items, 2, "结算失败后购物车应保持原样")

	for _, item := range cartData.Items {
		if item.BookID == doomedBook {
			assert.True(t, item.BookMissing, "已删除图书的条目应标记book_missing")
		}
	}

	// 没有订单落库
	ordersResp := GetJSON(t, BaseURL+"/orders", buyerToken)
	require.Equal(t, http.StatusOK, ordersResp.Status)

	var ordersData struct {
		Orders []OrderData `json:"orders"`
	}
	ordersResp.Decode(t, &ordersData)
	assert.Empty(t, ordersData.Orders, "事务回滚后不应有任何订单")

	t.Log("✓ 悬挂引用正确导致整单回滚")
}

// TestOrderStatusFlow 测试订单状态机
func TestOrderStatusFlow(t *testing.T) {
	RequireServer(t)

	_, sellerToken := RegisterTestUser(t, "status_seller", "seller")
	bookID := PublishTestBook(t, sellerToken, "《状态机测试图书》", 500, 100)

	_, buyerToken := RegisterTestUser(t, "status_buyer", "buyer")
	AddCartItem(t, buyerToken, bookID, 1)

	checkoutResp := PostJSON(t, BaseURL+"/orders", nil, buyerToken)
	require.Equal(t, http.StatusCreated, checkoutResp.Status)

	var checkoutData struct {
		Orders []OrderData `json:"orders"`
	}
	checkoutResp.Decode(t, &checkoutData)
	require.Len(t, checkoutData.Orders, 1)
	orderID := checkoutData.Orders[0].ID
	orderURL := fmt.Sprintf("%s/orders/%d", BaseURL, orderID)

	t.Run("pending不能直接delivered", func(t *testing.T) {
		resp := PatchJSON(t, orderURL, map[string]string{"status": "delivered"}, sellerToken)
		assert.Equal(t, http.StatusBadRequest, resp.Status, "跳过shipped应被拒绝")
	})

	t.Run("其他卖家不能改我的订单", func(t *testing.T) {
		_, otherToken := RegisterTestUser(t, "other_status_seller", "seller")
		resp := PatchJSON(t, orderURL, map[string]string{"status": "shipped"}, otherToken)
		assert.Equal(t, http.StatusForbidden, resp.Status)
	})

	t.Run("pending到shipped", func(t *testing.T) {
		resp := PatchJSON(t, orderURL, map[string]string{"status": "shipped"}, sellerToken)
		require.Equal(t, http.StatusOK, resp.Status, "发货应该成功: %s", string(resp.Body))

		var data struct {
			Order OrderData `json:"order"`
		}
		resp.Decode(t, &data)
		assert.Equal(t, "shipped", data.Order.Status)
	})

	t.Run("shipped到delivered", func(t *testing.T) {
		resp := PatchJSON(t, orderURL, map[string]string{"status": "delivered"}, sellerToken)
		require.Equal(t, http.StatusOK, resp.Status)

		var data struct {
			Order OrderData `json:"order"`
		}
		resp.Decode(t, &data)
		assert.Equal(t, "delivered", data.Order.Status)
	})

	t.Run("终态拒绝一切转换", func(t *testing.T) {
		for _, target := range []string{"pending", "shipped", "cancelled"} {
			resp := PatchJSON(t, orderURL, map[string]string{"status": target}, sellerToken)
			assert.Equal(t, http.StatusBadRequest, resp.Status, "delivered后转%s应被拒绝", target)
		}
	})

	t.Run("不存在的订单返回404", func(t *testing.T) {
		resp := PatchJSON(t, BaseURL+"/orders/999999", map[string]string{"status": "shipped"}, sellerToken)
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})

	t.Log("✓ 状态机测试通过")
}
