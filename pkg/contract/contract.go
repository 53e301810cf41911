// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/accounts/abi/bind"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"go.uber.org/zap"
)

func removeSurroundingParenthesis(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > 0 {
		if string(s[0]) != "(" || string(s[len(s)-1]) != ")" {
			return "", fmt.Errorf("expected esp %q to be surrounded by parenthesis", s)
		}
		s = s[1 : len(s)-1]
	}
	return s, nil
}

func getWords(s string) []string {
	words := []string{}
	word := ""
	insideParenthesis := false
	for _, rune := range s {
		c := string(rune)
		if insideParenthesis {
			if c == ")" {
				words = append(words, word)
				word = ""
				insideParenthesis = false
			} else {
				word += c
			}
			continue
		}
		if c == " " || c == "," || c == "(" {
			if word != "" {
				words = append(words, word)
				word = ""
			}
		}
		if c == " " || c == "," {
			continue
		}
		if c == "(" {
			insideParenthesis = true
			continue
		}
		word += c
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}

// fieldNames returns the struct field names of [param], if it is a struct
// with exactly [count] fields
func fieldNames(param interface{}, count int) []string {
	rt := reflect.TypeOf(param)
	if rt == nil || rt.Kind() != reflect.Struct || rt.NumField() != count {
		return nil
	}
	names := make([]string, count)
	for i := range names {
		names[i] = rt.Field(i).Name
	}
	return names
}

func getMap(
	types []string,
	params ...interface{},
) []map[string]interface{} {
	var names []string
	if len(params) == 1 {
		names = fieldNames(params[0], len(types))
	}
	r := []map[string]interface{}{}
	for i, t := range types {
		m := map[string]interface{}{}
		if strings.ContainsAny(t, " ,") {
			// complex type
			var param []interface{}
			if i < len(params) {
				param = []interface{}{params[i]}
			}
			m["components"] = getMap(getWords(t), param...)
			m["internaltype"] = "tuple"
			m["type"] = "tuple"
			m["name"] = ""
		} else {
			name := ""
			if names != nil {
				name = names[i]
			}
			m["internaltype"] = t
			m["type"] = t
			m["name"] = name
		}
		r = append(r, m)
	}
	return r
}

// ParseMethodEsp builds a single method ABI out of the method signature
// "name(inputType, ...)->(outputType, ...)". Tuples are written as
// parenthesized type lists. Returns the method name and the ABI JSON.
func ParseMethodEsp(
	methodEsp string,
	paid bool,
	view bool,
	params ...interface{},
) (string, string, error) {
	index := strings.Index(methodEsp, "(")
	if index == -1 {
		return methodEsp, "", nil
	}
	methodName := methodEsp[:index]
	methodTypes := methodEsp[index:]
	methodInputs := ""
	methodOutputs := ""
	index = strings.Index(methodTypes, "->")
	if index == -1 {
		methodInputs = methodTypes
	} else {
		methodInputs = methodTypes[:index]
		methodOutputs = methodTypes[index+2:]
	}
	var err error
	methodInputs, err = removeSurroundingParenthesis(methodInputs)
	if err != nil {
		return "", "", err
	}
	methodOutputs, err = removeSurroundingParenthesis(methodOutputs)
	if err != nil {
		return "", "", err
	}
	inputTypes := getWords(methodInputs)
	outputTypes := getWords(methodOutputs)
	if len(params) != len(inputTypes) {
		return "", "", fmt.Errorf("method %s expects %d params, got %d", methodName, len(inputTypes), len(params))
	}
	inputs := getMap(inputTypes, params...)
	outputs := getMap(outputTypes)
	abiMap := []map[string]interface{}{
		{
			"inputs":          inputs,
			"outputs":         outputs,
			"name":            methodName,
			"statemutability": "nonpayable",
			"type":            "function",
		},
	}
	if paid {
		abiMap[0]["statemutability"] = "payable"
	}
	if view {
		abiMap[0]["statemutability"] = "view"
	}
	abiBytes, err := json.MarshalIndent(abiMap, "", "  ")
	if err != nil {
		return "", "", err
	}
	return methodName, string(abiBytes), nil
}

func boundContract(
	client evm.Client,
	contractAddress common.Address,
	methodEsp string,
	paid bool,
	view bool,
	params ...interface{},
) (string, *bind.BoundContract, error) {
	methodName, methodABI, err := ParseMethodEsp(methodEsp, paid, view, params...)
	if err != nil {
		return "", nil, err
	}
	metadata := &bind.MetaData{
		ABI: methodABI,
	}
	abi, err := metadata.GetAbi()
	if err != nil {
		return "", nil, err
	}
	contract := bind.NewBoundContract(contractAddress, *abi, client.EthClient, client.EthClient, client.EthClient)
	return methodName, contract, nil
}

// TxToMethod signs with [privateKey] a call to [methodEsp] on [contractAddress],
// sends it and waits for its receipt. [description] is used on errors and logs.
func TxToMethod(
	ctx context.Context,
	log logging.Logger,
	client evm.Client,
	privateKey string,
	contractAddress common.Address,
	payment *big.Int,
	description string,
	methodEsp string,
	params ...interface{},
) (*types.Transaction, *types.Receipt, error) {
	if privateKey == "" {
		return nil, nil, constants.ErrNoPrivateKey
	}
	methodName, contract, err := boundContract(client, contractAddress, methodEsp, payment != nil, false, params...)
	if err != nil {
		return nil, nil, err
	}
	txOpts, err := client.GetTxOptsWithSigner(ctx, privateKey)
	if err != nil {
		return nil, nil, err
	}
	txOpts.Value = payment
	log.Info("sending contract tx",
		zap.String("description", description),
		zap.String("method", methodName),
		zap.Stringer("contract", contractAddress),
		zap.Stringer("from", txOpts.From),
	)
	tx, err := contract.Transact(txOpts, methodName, params...)
	if err != nil {
		return nil, nil, evm.TransactionError(nil, err, "failure on %s", description)
	}
	receipt, success, err := client.WaitForTransaction(ctx, tx)
	if err != nil {
		return tx, nil, evm.TransactionError(tx, err, "failure on %s", description)
	}
	if !success {
		if dump, err := evm.TxDump(description, tx); err == nil {
			log.Debug(dump)
		}
		return tx, receipt, evm.TransactionError(tx, constants.ErrFailedReceipt, "failure on %s", description)
	}
	log.Info("contract tx accepted",
		zap.String("description", description),
		zap.Stringer("txHash", tx.Hash()),
		zap.Uint64("gasUsed", receipt.GasUsed),
	)
	return tx, receipt, nil
}

// CallToMethod executes the view call [methodEsp] on [contractAddress]
func CallToMethod(
	ctx context.Context,
	client evm.Client,
	contractAddress common.Address,
	methodEsp string,
	params ...interface{},
) ([]interface{}, error) {
	methodName, contract, err := boundContract(client, contractAddress, methodEsp, false, true, params...)
	if err != nil {
		return nil, err
	}
	var out []interface{}
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, methodName, params...); err != nil {
		return nil, fmt.Errorf("failure calling %s on %s: %w", methodName, contractAddress.Hex(), err)
	}
	return out, nil
}

// GetSmartContractCallResult extracts the single value returned by [methodName]
func GetSmartContractCallResult[T any](methodName string, out []interface{}) (T, error) {
	var zero T
	if len(out) == 0 {
		return zero, fmt.Errorf("error at %s call, no value returned", methodName)
	}
	if len(out) != 1 {
		return zero, fmt.Errorf("error at %s call, expected 1 value, got %d", methodName, len(out))
	}
	value, ok := out[0].(T)
	if !ok {
		return zero, fmt.Errorf("error at %s call, expected %T, got %T", methodName, zero, out[0])
	}
	return value, nil
}
