package dao

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

// DBErrorToApi converts database errors into DaoErrors with the proper
// classification, so handlers can map them to http statuses. resource names
// the entity for not-found messages, uuid is optional.
func DBErrorToApi(e error, resource string, uuid *string) *ce.DaoError {
	if e == nil {
		return nil
	}

	var pgError *pgconn.PgError
	if errors.As(e, &pgError) {
		if pgError.Code == "23505" {
			var dupKeyName string
			switch pgError.ConstraintName {
			case "organizations_subdomain_unique":
				dupKeyName = "subdomain"
			case "organization_members_org_user_unique":
				dupKeyName = "user"
			case "organization_domains_org_domain_unique":
				dupKeyName = "domain"
			case "ticket_categories_org_name_unique":
				dupKeyName = "name"
			case "tickets_org_reference_id_unique":
				dupKeyName = "reference id"
			default:
				dupKeyName = "value"
			}
			return &ce.DaoError{AlreadyExists: true, Message: resource + " with this " + dupKeyName + " already exists"}
		}
		if pgError.Code == "22021" {
			return &ce.DaoError{BadValidation: true, Message: "Request parameters contain invalid syntax"}
		}
	}

	var dbError models.Error
	if errors.As(e, &dbError) {
		return &ce.DaoError{BadValidation: dbError.Validation, Message: dbError.Message}
	}

	daoErr := ce.DaoError{}
	if errors.Is(e, gorm.ErrRecordNotFound) {
		msg := resource + " not found"
		if uuid != nil {
			msg = fmt.Sprintf("%s with UUID %s not found", resource, *uuid)
		}
		daoErr = ce.DaoError{
			Message:  msg,
			NotFound: true,
		}
	} else {
		daoErr = ce.DaoError{
			Message:  e.Error(),
			NotFound: ce.HttpCodeForDaoError(e) == 404,
		}
	}

	daoErr.Wrap(e)
	return &daoErr
}

func isUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		if pgError.Code == "23505" {
			return true
		}
	}
	return false
}
