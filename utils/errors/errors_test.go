package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/greengarden/greenery/constant"
	cerr "github.com/greengarden/greenery/utils/errors"
)

type fakeResult struct {
	n   int64
	err error
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.n, r.err
}

func TestVerifyOneRow(t *testing.T) {
	execErr := stderrors.New("connection reset")
	resultErr := stderrors.New("rows affected unsupported")

	tests := []struct {
		name    string
		res     cerr.RowsAffected
		err     error
		wantErr error
	}{
		{name: "one row touched", res: fakeResult{n: 1}, wantErr: nil},
		{name: "several rows touched", res: fakeResult{n: 3}, wantErr: nil},
		{name: "zero rows becomes sentinel", res: fakeResult{n: 0}, wantErr: cerr.ErrNoRowsAffected},
		{name: "exec error passes through", res: nil, err: execErr, wantErr: execErr},
		{name: "rows affected error passes through", res: fakeResult{err: resultErr}, wantErr: resultErr},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := cerr.VerifyOneRow(tt.res, tt.err)
			if !stderrors.Is(err, tt.wantErr) {
				t.Fatalf("VerifyOneRow() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCustomError(t *testing.T) {
	err := cerr.SetCustomError(constant.ErrNoEffect)

	if err.Error() != constant.ErrorTypeMessage[constant.ErrNoEffect] {
		t.Fatalf("Error() = %s", err.Error())
	}
	if err.ErrorCode() != "0008" {
		t.Fatalf("ErrorCode() = %s, want 0008", err.ErrorCode())
	}
	if err.ErrorHTTPCode() != http.StatusConflict {
		t.Fatalf("ErrorHTTPCode() = %d, want %d", err.ErrorHTTPCode(), http.StatusConflict)
	}
}
