package rpc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/websocket"
	"github.com/hogyzen12/carrot-go/internal/types"
)

// confirmViaWebSocket waits for a signatureNotification on a fresh
// subscription. The subscription auto-cancels node-side after delivering one
// notification, so no unsubscribe round trip is needed.
func (c *Client) confirmViaWebSocket(signature solana.Signature) error {
	conn, _, err := websocket.DefaultDialer.Dial(c.wsUrl, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	subscriptionRequest := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "signatureSubscribe",
		"params": []interface{}{
			signature.String(),
			map[string]interface{}{
				"commitment": "confirmed",
			},
		},
	}

	if err := conn.WriteJSON(subscriptionRequest); err != nil {
		return err
	}

	if err := conn.SetReadDeadline(time.Now().Add(c.confirmTimeout)); err != nil {
		return err
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var response map[string]interface{}
		if err := json.Unmarshal(message, &response); err != nil {
			continue
		}

		if response["method"] != "signatureNotification" {
			continue
		}

		params, ok := response["params"].(map[string]interface{})
		if !ok {
			continue
		}
		result, ok := params["result"].(map[string]interface{})
		if !ok {
			continue
		}
		value, ok := result["value"].(map[string]interface{})
		if !ok {
			continue
		}

		if txErr := value["err"]; txErr != nil {
			return &types.SubmissionError{
				Err: fmt.Errorf("transaction %s failed on chain: %v", signature, txErr),
			}
		}

		return nil
	}
}
