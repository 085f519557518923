package regress

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrRankDeficient      = errors.New("design matrix is rank deficient")
	ErrTooFewObservations = errors.New("too few observations for predictors")
)

// Column is one predictor of a design matrix.
type Column struct {
	Name string
	Data []float64
}

type Coefficient struct {
	Name     string  `json:"name"`
	Estimate float64 `json:"estimate"`
	StdErr   float64 `json:"std_err"`
	TStat    float64 `json:"t_stat"`
	PValue   float64 `json:"p_value"`
	Sig      string  `json:"sig"`
}

type Model struct {
	Name         string        `json:"name"`
	Coefficients []Coefficient `json:"coefficients"`
	R2           float64       `json:"r2"`
	AdjR2        float64       `json:"adj_r2"`
	N            int           `json:"n"`
}

// Fit runs OLS of y on the predictors plus an intercept, with HC1
// heteroskedasticity-consistent standard errors. Error variance in delivery
// data scales with send volume, so classical OLS standard errors would
// overstate significance.
//
// Fitting fails when the design matrix is rank deficient or when there are
// not more observations than fitted parameters.
func Fit(name string, y []float64, predictors []Column) (*Model, error) {
	n := len(y)
	cols := make([]Column, 0, len(predictors)+1)
	cols = append(cols, Column{Name: "const", Data: ones(n)})
	cols = append(cols, predictors...)
	k := len(cols)

	for _, c := range cols {
		if len(c.Data) != n {
			return nil, fmt.Errorf("model %s: column %s has %d values, want %d", name, c.Name, len(c.Data), n)
		}
	}
	if n <= k {
		return nil, fmt.Errorf("model %s: %d observations for %d parameters: %w", name, n, k, ErrTooFewObservations)
	}

	x := mat.NewDense(n, k, nil)
	for j, c := range cols {
		x.SetCol(j, c.Data)
	}
	yVec := mat.NewVecDense(n, y)

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, fmt.Errorf("model %s: SVD factorization failed", name)
	}
	if rank := matrixRank(&svd, n, k); rank < k {
		return nil, fmt.Errorf("model %s: rank %d < %d columns: %w", name, rank, k, ErrRankDeficient)
	}

	var qr mat.QR
	qr.Factorize(x)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, yVec); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("model %s: solve: %w: %v", name, ErrRankDeficient, err)
		}
	}

	// Residuals and fit quality.
	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	resid := make([]float64, n)
	ssr := 0.0
	ymean := mean(y)
	sst := 0.0
	for i := 0; i < n; i++ {
		resid[i] = y[i] - fitted.AtVec(i)
		ssr += resid[i] * resid[i]
		d := y[i] - ymean
		sst += d * d
	}
	r2 := 0.0
	if sst > 0 {
		r2 = 1 - ssr/sst
	}
	adjR2 := 1 - (1-r2)*float64(n-1)/float64(n-k)

	cov := hc1Covariance(x, resid, n, k)
	if cov == nil {
		return nil, fmt.Errorf("model %s: X'X is singular: %w", name, ErrRankDeficient)
	}

	df := float64(n - k)
	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	model := &Model{Name: name, R2: r2, AdjR2: adjR2, N: n}
	for j, c := range cols {
		est := beta.AtVec(j)
		se := math.Sqrt(cov.At(j, j))
		var t, p float64
		switch {
		case se > 0:
			t = est / se
			p = 2 * (1 - tdist.CDF(math.Abs(t)))
		case est != 0:
			t = math.Inf(sign(est))
			p = 0
		}
		model.Coefficients = append(model.Coefficients, Coefficient{
			Name:     c.Name,
			Estimate: est,
			StdErr:   se,
			TStat:    t,
			PValue:   p,
			Sig:      sigTier(p),
		})
	}
	return model, nil
}

// hc1Covariance builds the sandwich estimator
// n/(n-k) * (X'X)^-1 X' diag(e^2) X (X'X)^-1.
func hc1Covariance(x *mat.Dense, resid []float64, n, k int) *mat.Dense {
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var bread mat.Dense
	if err := bread.Inverse(&xtx); err != nil {
		return nil
	}

	// Scale each row of X by its residual; the meat is then (eX)'(eX).
	xe := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			xe.Set(i, j, x.At(i, j)*resid[i])
		}
	}
	var meat mat.Dense
	meat.Mul(xe.T(), xe)

	var half mat.Dense
	half.Mul(&bread, &meat)
	var cov mat.Dense
	cov.Mul(&half, &bread)
	cov.Scale(float64(n)/float64(n-k), &cov)
	return &cov
}

// matrixRank counts singular values above the standard relative tolerance.
func matrixRank(svd *mat.SVD, n, k int) int {
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	dim := n
	if k > dim {
		dim = k
	}
	tol := float64(dim) * max * 2.220446049250313e-16
	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}
	return rank
}

func sigTier(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	}
	return ""
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func mean(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
