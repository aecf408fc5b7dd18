package v1

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/mycash-plus/backend/internal/finance"
	"github.com/mycash-plus/backend/internal/httputil"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/mycash-plus/backend/internal/storage"
)

// Blobs is the blob store avatars are uploaded to. It is set at startup.
var Blobs storage.BlobStore

// RegisterMemberRoutes registers the routes for family members with
// the RouterGroup that is passed.
func RegisterMemberRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMembers)
		r.GET("", GetMembers)
		r.POST("", CreateMember)
	}

	// Member with ID
	{
		r.OPTIONS("/:id", OptionsMemberDetail)
		r.GET("/:id", GetMember)
		r.PATCH("/:id", UpdateMember)
		r.DELETE("/:id", DeleteMember)
		r.OPTIONS("/:id/avatar", OptionsMemberAvatar)
		r.POST("/:id/avatar", UploadMemberAvatar)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Members
// @Success		204
// @Router			/v1/members [options]
func OptionsMembers(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Members
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/members/{id} [options]
func OptionsMemberDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	_, err := firstOwned[models.FamilyMember](uri.ID.UUID, userID(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Members
// @Success		204
// @Router			/v1/members/{id}/avatar [options]
func OptionsMemberAvatar(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get members
// @Description	Returns all family members of the user, ordered by creation. The primary profile is created on first use.
// @Tags			Members
// @Produce		json
// @Success		200	{object}	MemberListResponse
// @Failure		500	{object}	MemberListResponse
// @Router			/v1/members [get]
func GetMembers(c *gin.Context) {
	err := models.EnsureDefaults(models.DB, userID(c), userName(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberListResponse{
			Error: &e,
		})
		return
	}

	members, err := userMembers(userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Member, 0, len(members))
	for _, member := range members {
		data = append(data, newMember(c, member))
	}

	c.JSON(http.StatusOK, MemberListResponse{Data: data})
}

// @Summary		Get member
// @Description	Returns a specific family member
// @Tags			Members
// @Produce		json
// @Success		200	{object}	MemberResponse
// @Failure		400	{object}	MemberResponse
// @Failure		404	{object}	MemberResponse
// @Failure		500	{object}	MemberResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/members/{id} [get]
func GetMember(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{
			Error: &e,
		})
		return
	}

	member, err := firstOwned[models.FamilyMember](uri.ID.UUID, userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &e,
		})
		return
	}

	data := newMember(c, member)
	c.JSON(http.StatusOK, MemberResponse{Data: &data})
}

// @Summary		Create member
// @Description	Creates a new family member. The new member is staged into the current list before persisting, so the response always contains the authoritative list for clients that updated their view optimistically.
// @Tags			Members
// @Produce		json
// @Success		201		{object}	MemberCreateResponse
// @Failure		400		{object}	MemberCreateResponse
// @Failure		500		{object}	MemberCreateResponse
// @Param			member	body		MemberEditable	true	"Member"
// @Router			/v1/members [post]
func CreateMember(c *gin.Context) {
	var editable MemberEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberCreateResponse{
			Error: &e,
		})
		return
	}

	staged := editable.model(userID(c))

	if v := staged.Validate(); v != nil {
		c.JSON(http.StatusBadRequest, MemberCreateResponse{
			FieldErrors: v,
		})
		return
	}

	current, err := userMembers(userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberCreateResponse{
			Error: &e,
		})
		return
	}

	members, err := finance.OptimisticInsert(current, staged, func(m models.FamilyMember) (models.FamilyMember, error) {
		err := models.DB.Create(&m).Error
		return m, err
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberCreateResponse{
			Error: &e,
		})
		return
	}

	list := make([]Member, 0, len(members))
	for _, member := range members {
		list = append(list, newMember(c, member))
	}

	data := list[len(list)-1]
	c.JSON(http.StatusCreated, MemberCreateResponse{
		Data:    &data,
		Members: list,
	})
}

// @Summary		Update member
// @Description	Updates an existing family member. Only values to be updated need to be specified.
// @Tags			Members
// @Accept			json
// @Produce		json
// @Success		200		{object}	MemberResponse
// @Failure		400		{object}	MemberResponse
// @Failure		404		{object}	MemberResponse
// @Failure		500		{object}	MemberResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			member	body		MemberEditable	true	"Member"
// @Router			/v1/members/{id} [patch]
func UpdateMember(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{
			Error: &e,
		})
		return
	}

	member, err := firstOwned[models.FamilyMember](uri.ID.UUID, userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MemberEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &e,
		})
		return
	}

	var update MemberEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&member).Select("", updateFields...).Updates(update.model(userID(c))).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &e,
		})
		return
	}

	data := newMember(c, member)
	c.JSON(http.StatusOK, MemberResponse{Data: &data})
}

// @Summary		Delete member
// @Description	Deletes a family member. Their transactions are kept as family-wide records.
// @Tags			Members
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/members/{id} [delete]
func DeleteMember(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	member, err := firstOwned[models.FamilyMember](uri.ID.UUID, userID(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Detach the member's transactions instead of deleting them
	err = models.DB.Model(&models.Transaction{}).
		Where("member_id = ?", member.ID).
		Update("member_id", nil).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&member).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Upload avatar
// @Description	Uploads an avatar image for a family member and stores its public URL on the member
// @Tags			Members
// @Accept			mpfd
// @Produce		json
// @Success		200		{object}	MemberResponse
// @Failure		400		{object}	MemberResponse
// @Failure		404		{object}	MemberResponse
// @Failure		500		{object}	MemberResponse
// @Param			id		path		string	true	"ID formatted as string"
// @Param			avatar	formData	file	true	"Image file"
// @Router			/v1/members/{id}/avatar [post]
func UploadMemberAvatar(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{
			Error: &e,
		})
		return
	}

	member, err := firstOwned[models.FamilyMember](uri.ID.UUID, userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &e,
		})
		return
	}

	formFile, err := c.FormFile("avatar")
	if err != nil {
		e := errNoFilePost.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{
			Error: &e,
		})
		return
	}

	file, err := formFile.Open()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{
			Error: &e,
		})
		return
	}
	defer file.Close()

	name := fmt.Sprintf("avatars/%s%s", member.ID, filepath.Ext(formFile.Filename))
	url, err := Blobs.Upload(c.Request.Context(), name, file, formFile.Header.Get("Content-Type"))
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, MemberResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&member).Select("AvatarURL").Updates(models.FamilyMember{AvatarURL: url}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &e,
		})
		return
	}

	member.AvatarURL = url
	data := newMember(c, member)
	c.JSON(http.StatusOK, MemberResponse{Data: &data})
}
