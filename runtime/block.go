package runtime

import (
	"anonymity-service/domain"
	"anonymity-service/errors"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Tx is a contract call submitted by Sender.
type Tx struct {
	ID       uuid.UUID
	Sender   domain.Principal
	Function domain.Operation
	Args     []any
}

func ContractCall(function domain.Operation, sender domain.Principal, args ...any) Tx {
	return Tx{ID: uuid.New(), Sender: sender, Function: function, Args: args}
}

type Receipt struct {
	TxID   uuid.UUID
	Result Result
}

type Block struct {
	Height   uint64
	Receipts []Receipt
}

// Ok wraps a successful response.
type Ok struct{ Value any }

// Some wraps a present optional message.
type Some struct{ Message domain.Message }

// None is an absent optional.
type None struct{}

// Result is the outcome of one transaction, rendered in ledger notation.
type Result struct {
	Value any
	Err   error
}

// String renders the result the way the ledger prints receipts,
// e.g. "(ok true)", "(err u101)" or "(some {content: u\"hi\", sender: none})".
func (r Result) String() string {
	if r.Err != nil {
		if code, ok := errors.CodeOf(r.Err); ok {
			return fmt.Sprintf("(err u%d)", uint32(code))
		}
		return fmt.Sprintf("(runtime-error %q)", r.Err.Error())
	}
	return render(r.Value)
}

func render(v any) string {
	switch val := v.(type) {
	case Ok:
		return fmt.Sprintf("(ok %s)", render(val.Value))
	case Some:
		return fmt.Sprintf("(some %s)", render(val.Message))
	case None:
		return "none"
	case bool:
		return fmt.Sprintf("%t", val)
	case uint64:
		return fmt.Sprintf("u%d", val)
	case domain.BulkReceipt:
		return fmt.Sprintf("{first-id: u%d, second-id: u%d}", val.FirstID, val.SecondID)
	case domain.Message:
		return fmt.Sprintf("{content: u%q, sender: none}", val.Content)
	case domain.State:
		return fmt.Sprintf("{owner: '%s, initialized: %t, paused: %t, message-count: u%d}",
			val.Owner, val.Initialized, val.Paused, val.MessageCount)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Chain sequences transactions into blocks on top of a Host.
type Chain struct {
	mu     sync.Mutex
	host   *Host
	height uint64
}

func NewChain(host *Host) *Chain {
	return &Chain{host: host}
}

// MineBlock executes txs in order. Each transaction commits or rolls back on
// its own; a failing transaction never affects the others.
func (c *Chain) MineBlock(ctx context.Context, txs ...Tx) Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.height++
	receipts := lo.Map(txs, func(tx Tx, _ int) Receipt {
		return Receipt{TxID: tx.ID, Result: c.call(ctx, tx)}
	})
	return Block{Height: c.height, Receipts: receipts}
}

func (c *Chain) Height() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

func (c *Chain) call(ctx context.Context, tx Tx) Result {
	h := c.host
	switch tx.Function {
	case domain.OpInitialize:
		return okOrErr(true, h.Initialize(ctx, tx.Sender))
	case domain.OpPauseService:
		return okOrErr(true, h.PauseService(ctx, tx.Sender))
	case domain.OpResumeService:
		return okOrErr(true, h.ResumeService(ctx, tx.Sender))
	case domain.OpSendMessage:
		contents, err := stringArgs(tx.Args, 1)
		if err != nil {
			return Result{Err: err}
		}
		id, err := h.SendAnonymousMessage(ctx, contents[0])
		return okOrErr(id, err)
	case domain.OpSendBulkMessages:
		contents, err := stringArgs(tx.Args, 2)
		if err != nil {
			return Result{Err: err}
		}
		receipt, err := h.SendBulkMessages(ctx, contents[0], contents[1])
		return okOrErr(receipt, err)
	case domain.OpGetMessage:
		id, err := uintArg(tx.Args)
		if err != nil {
			return Result{Err: err}
		}
		msg, found, err := h.GetMessage(ctx, id)
		if err != nil {
			return Result{Err: err}
		}
		if !found {
			return Result{Value: None{}}
		}
		return Result{Value: Some{Message: msg}}
	case domain.OpGetMessageCount:
		count, err := h.GetMessageCount(ctx)
		return Result{Value: count, Err: err}
	case domain.OpDoesMessageExist:
		id, err := uintArg(tx.Args)
		if err != nil {
			return Result{Err: err}
		}
		exists, err := h.DoesMessageExist(ctx, id)
		return Result{Value: exists, Err: err}
	case domain.OpGetLastMessageID:
		id, err := h.GetLastMessageID(ctx)
		return okOrErr(id, err)
	case domain.OpGetServiceStatus:
		state, err := h.GetServiceStatus(ctx)
		return Result{Value: state, Err: err}
	default:
		return Result{Err: fmt.Errorf("unknown function %q", tx.Function)}
	}
}

func okOrErr(value any, err error) Result {
	if err != nil {
		return Result{Err: err}
	}
	return Result{Value: Ok{Value: value}}
}

func stringArgs(args []any, n int) ([]string, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d arguments, got %d", n, len(args))
	}
	out := make([]string, 0, n)
	for i, a := range args {
		s, ok := a.(string)
		if !ok {
			return nil, fmt.Errorf("argument %d: expected text, got %T", i+1, a)
		}
		out = append(out, s)
	}
	return out, nil
}

func uintArg(args []any) (uint64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case uint64:
		return v, nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("argument 1: negative identifier %d", v)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("argument 1: expected uint, got %T", args[0])
	}
}

// Results returns the rendered results of the block, in transaction order.
func (b Block) Results() []string {
	return lo.Map(b.Receipts, func(r Receipt, _ int) string {
		return r.Result.String()
	})
}

func (b Block) String() string {
	return fmt.Sprintf("block %d: [%s]", b.Height, strings.Join(b.Results(), ", "))
}
