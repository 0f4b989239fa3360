package etl

import (
	"context"

	"github.com/pkg/errors"

	"github.com/BartekS5/portalsync/pkg/database"
	"github.com/BartekS5/portalsync/pkg/logger"
)

// CheckReport is what a connection check found on both sides.
type CheckReport struct {
	ActiveCustomers int64
	// MirrorRows maps each destination table to its current row count.
	MirrorRows map[string]int64
}

// Check opens both databases and counts rows without changing anything.
func (p *Pipeline) Check(ctx context.Context) (*CheckReport, error) {
	report := &CheckReport{MirrorRows: make(map[string]int64, len(p.Tables))}

	logger.Info("Testing ERP database connection...")
	src, err := p.Open(ctx, p.Config.ERPConnString)
	if err != nil {
		return nil, &ConnectivityError{Target: "erp", DSN: database.Redact(p.Config.ERPConnString), Err: err}
	}
	defer src.Close()

	if err := src.QueryRowContext(ctx, "SELECT COUNT(*) FROM customer WHERE active = 1").Scan(&report.ActiveCustomers); err != nil {
		return nil, &SourceQueryError{Table: Customers.Name(), Err: err}
	}
	logger.Infof("ERP connection OK (%s) - found %d active customers", src.Redacted, report.ActiveCustomers)

	logger.Info("Testing mirror database connection...")
	dst, err := p.Open(ctx, p.Config.MirrorConnString)
	if err != nil {
		return nil, &ConnectivityError{Target: "mirror", DSN: database.Redact(p.Config.MirrorConnString), Err: err}
	}
	defer dst.Close()

	for _, t := range p.Tables {
		var n int64
		if err := dst.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.Name()).Scan(&n); err != nil {
			return nil, errors.Wrapf(err, "counting mirror table %s", t.Name())
		}
		report.MirrorRows[t.Name()] = n
		logger.Infof("Mirror connection OK (%s) - %s currently has %d rows", dst.Redacted, t.Name(), n)
	}
	return report, nil
}
