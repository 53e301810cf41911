// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
	"github.com/microgrid-exchange/microgrid-cli/internal/testutils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/stretchr/testify/require"
)

var contractAddress = common.HexToAddress("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25")

func TestParseMethodEsp(t *testing.T) {
	tests := []struct {
		name         string
		esp          string
		paid         bool
		view         bool
		params       []interface{}
		expectedName string
		expectedSig  string
		mutability   string
		outputs      int
	}{
		{
			name:         "no params",
			esp:          "ceo_address()->(address)",
			view:         true,
			expectedName: "ceo_address",
			expectedSig:  "ceo_address()",
			mutability:   "view",
			outputs:      1,
		},
		{
			name:         "one param several outputs",
			esp:          "device_index(address)->(uint256, uint256, uint256, uint256, bool, bool)",
			view:         true,
			params:       []interface{}{common.Address{}},
			expectedName: "device_index",
			expectedSig:  "device_index(address)",
			mutability:   "view",
			outputs:      6,
		},
		{
			name:         "tx",
			esp:          "generateWattHours(uint256)",
			params:       []interface{}{big.NewInt(1)},
			expectedName: "generateWattHours",
			expectedSig:  "generateWattHours(uint256)",
			mutability:   "nonpayable",
		},
		{
			name:         "paid",
			esp:          "deposit()",
			paid:         true,
			expectedName: "deposit",
			expectedSig:  "deposit()",
			mutability:   "payable",
		},
		{
			name: "tuple",
			esp:  "register((address, uint256))",
			params: []interface{}{struct {
				Meter    common.Address
				Capacity *big.Int
			}{}},
			expectedName: "register",
			expectedSig:  "register((address,uint256))",
			mutability:   "nonpayable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, abiJSON, err := ParseMethodEsp(tt.esp, tt.paid, tt.view, tt.params...)
			require.NoError(t, err)
			require.Equal(t, tt.expectedName, name)
			parsed, err := abi.JSON(strings.NewReader(abiJSON))
			require.NoError(t, err)
			method, ok := parsed.Methods[name]
			require.True(t, ok)
			require.Equal(t, tt.expectedSig, method.Sig)
			require.Equal(t, tt.mutability, method.StateMutability)
			require.Len(t, method.Outputs, tt.outputs)
		})
	}
}

func TestParseMethodEspTupleFieldNames(t *testing.T) {
	_, abiJSON, err := ParseMethodEsp("register((address, uint256))", false, false, struct {
		Meter    common.Address
		Capacity *big.Int
	}{})
	require.NoError(t, err)
	var parsed []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(abiJSON), &parsed))
	inputs := parsed[0]["inputs"].([]interface{})
	components := inputs[0].(map[string]interface{})["components"].([]interface{})
	require.Equal(t, "Meter", components[0].(map[string]interface{})["name"])
	require.Equal(t, "Capacity", components[1].(map[string]interface{})["name"])
}

func TestParseMethodEspErrors(t *testing.T) {
	_, _, err := ParseMethodEsp("ceo_address()->address", false, true)
	require.ErrorContains(t, err, "surrounded by parenthesis")
	_, _, err = ParseMethodEsp("setCEO(address)", false, false)
	require.ErrorContains(t, err, "expects 1 params, got 0")
}

func TestParseMethodEspWithoutTypes(t *testing.T) {
	name, abiJSON, err := ParseMethodEsp("ceo_address", false, true)
	require.NoError(t, err)
	require.Equal(t, "ceo_address", name)
	require.Empty(t, abiJSON)
}

func TestGetSmartContractCallResult(t *testing.T) {
	addr, err := GetSmartContractCallResult[common.Address]("ceo_address", []interface{}{contractAddress})
	require.NoError(t, err)
	require.Equal(t, contractAddress, addr)

	_, err = GetSmartContractCallResult[common.Address]("ceo_address", nil)
	require.ErrorContains(t, err, "no value returned")
	_, err = GetSmartContractCallResult[*big.Int]("ceo_address", []interface{}{contractAddress})
	require.ErrorContains(t, err, "expected *big.Int")
	_, err = GetSmartContractCallResult[bool]("pair", []interface{}{true, false})
	require.ErrorContains(t, err, "expected 1 value, got 2")
}

func TestCallToMethod(t *testing.T) {
	chain := testutils.NewFakeChain()
	ceo := common.HexToAddress(testutils.DevAddress)
	selector := crypto.Keccak256([]byte("ceo_address()"))[:4]
	addressType, err := abi.NewType("address", "", nil)
	require.NoError(t, err)
	chain.CallHandler = func(msg ethereum.CallMsg) ([]byte, error) {
		require.Equal(t, contractAddress, *msg.To)
		require.Equal(t, selector, msg.Data)
		return abi.Arguments{{Type: addressType}}.Pack(ceo)
	}
	out, err := CallToMethod(context.Background(), chain.Client(t), contractAddress, "ceo_address()->(address)")
	require.NoError(t, err)
	got, err := GetSmartContractCallResult[common.Address]("ceo_address", out)
	require.NoError(t, err)
	require.Equal(t, ceo, got)
}

func TestCallToMethodNoCode(t *testing.T) {
	chain := testutils.NewFakeChain()
	_, err := CallToMethod(context.Background(), chain.Client(t), contractAddress, "ceo_address()->(address)")
	require.ErrorContains(t, err, "failure calling ceo_address")
}

func TestTxToMethod(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewFakeChain()
	chain.SetCode(contractAddress, []byte{0x1})
	tx, receipt, err := TxToMethod(
		context.Background(),
		logging.NoLog{},
		chain.Client(t),
		testutils.DevPrivateKey,
		contractAddress,
		nil,
		"generate watt hours",
		"generateWattHours(uint256)",
		big.NewInt(1500),
	)
	require.NoError(err)
	require.Equal(types.ReceiptStatusSuccessful, receipt.Status)
	require.Equal(contractAddress, *tx.To())
	require.Equal(crypto.Keccak256([]byte("generateWattHours(uint256)"))[:4], tx.Data()[:4])
	require.Equal(common.LeftPadBytes(big.NewInt(1500).Bytes(), 32), tx.Data()[4:])
	require.Len(chain.Sent(), 1)
}

func TestTxToMethodFailures(t *testing.T) {
	chain := testutils.NewFakeChain()
	client := chain.Client(t)
	_, _, err := TxToMethod(context.Background(), logging.NoLog{}, client, "", contractAddress, nil, "set ceo", "setCEO(address)", contractAddress)
	require.ErrorIs(t, err, constants.ErrNoPrivateKey)

	// no code at the target address
	_, _, err = TxToMethod(context.Background(), logging.NoLog{}, client, testutils.DevPrivateKey, contractAddress, nil, "set ceo", "setCEO(address)", contractAddress)
	require.ErrorContains(t, err, "failure on set ceo")

	chain.SetCode(contractAddress, []byte{0x1})
	chain.Status = types.ReceiptStatusFailed
	tx, _, err := TxToMethod(context.Background(), logging.NoLog{}, client, testutils.DevPrivateKey, contractAddress, nil, "set ceo", "setCEO(address)", contractAddress)
	require.ErrorIs(t, err, constants.ErrFailedReceipt)
	require.NotNil(t, tx)
}
