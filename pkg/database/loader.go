package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"rfm-segment/pkg/models"

	_ "github.com/go-sql-driver/mysql"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open DSN mariadb:// ou mysql:// → format MySQL driver
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, redact(mysqlDSN), nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("incomplete dsn (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

// redact masque le mot de passe pour les logs.
func redact(mysqlDSN string) string {
	at := strings.LastIndex(mysqlDSN, "@")
	colon := strings.Index(mysqlDSN, ":")
	if at < 0 || colon < 0 || colon > at {
		return mysqlDSN
	}
	return mysqlDSN[:colon+1] + "***" + mysqlDSN[at:]
}

// LoadTable lit toute la table tableName. Les cellules sont renvoyées en
// texte brut (NULL → ""), la sélection des colonnes est faite par le moteur.
func LoadTable(ctx context.Context, db *sql.DB, tableName string) (models.Table, error) {
	if !tableNameRe.MatchString(tableName) {
		return models.Table{}, fmt.Errorf("invalid table name: %q", tableName)
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", tableName))
	if err != nil {
		return models.Table{}, fmt.Errorf("query %s: %w", tableName, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return models.Table{}, err
	}
	t := models.Table{Columns: cols}

	nulls := 0
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return models.Table{}, fmt.Errorf("scan %s: %w", tableName, err)
		}
		row := make([]string, len(cols))
		for i, c := range cells {
			if !c.Valid {
				nulls++
			}
			row[i] = c.String
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return models.Table{}, err
	}

	log.Printf("[DEBUG] table=%s columns=%d rows=%d null_cells=%d", tableName, len(cols), len(t.Rows), nulls)
	return t, nil
}
