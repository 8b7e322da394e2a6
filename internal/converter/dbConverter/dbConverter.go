package dbConverter

import (
	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model/dbModel"
)

func ConvertLead(dbLead dbModel.Lead) model.Lead {
	return model.Lead{
		LeadID:       dbLead.LeadID,
		Reference:    dbLead.Reference,
		ChatID:       dbLead.ChatID,
		Username:     dbLead.Username.String,
		Intent:       dbLead.Intent,
		Location:     dbLead.Location,
		Block:        dbLead.Block.String,
		PropertyType: dbLead.PropertyType,
		Size:         dbLead.Size,
		Message:      dbLead.Message,
		Link:         dbLead.Link,
		DtCreate:     dbLead.DtCreate,
	}
}
